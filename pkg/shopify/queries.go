package shopify

// GraphQL documents sent to the Admin API. List queries are bounded to a single
// page; callers choose the page size through variables.

const shopQuery = `
query ShopContext {
  shop {
    name
    email
    myshopifyDomain
    plan { displayName }
    currencyCode
  }
}`

const ordersQuery = `
query RecentOrders($first: Int!) {
  orders(first: $first, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        id
        name
        createdAt
        displayFinancialStatus
        displayFulfillmentStatus
        totalPriceSet { shopMoney { amount currencyCode } }
        subtotalPriceSet { shopMoney { amount currencyCode } }
        totalTaxSet { shopMoney { amount currencyCode } }
        totalShippingPriceSet { shopMoney { amount currencyCode } }
        totalDiscountsSet { shopMoney { amount currencyCode } }
        totalRefundedSet { shopMoney { amount currencyCode } }
        lineItems(first: 5) {
          edges { node { title quantity } }
        }
        customer {
          id
          displayName
          email
          numberOfOrders
        }
        channelInformation {
          channelDefinition { channelName }
        }
      }
    }
  }
}`

const productsQuery = `
query RecentProducts($first: Int!) {
  products(first: $first, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        id
        title
        status
        totalInventory
        productType
        vendor
        priceRangeV2 { minVariantPrice { amount currencyCode } }
      }
    }
  }
}`

const customersQuery = `
query RecentCustomers($first: Int!) {
  customers(first: $first, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        id
        displayName
        email
        numberOfOrders
        amountSpent { amount currencyCode }
        createdAt
      }
    }
  }
}`

const abandonedCheckoutsQuery = `
query AbandonedCheckouts {
  abandonedCheckouts(first: 250) {
    edges { node { id } }
  }
}`

const subscriptionCreateMutation = `
mutation CreateSubscription($name: String!, $lineItems: [AppSubscriptionLineItemInput!]!, $returnUrl: URL!, $trialDays: Int, $test: Boolean) {
  appSubscriptionCreate(name: $name, lineItems: $lineItems, returnUrl: $returnUrl, trialDays: $trialDays, test: $test) {
    appSubscription { id name status }
    confirmationUrl
    userErrors { field message }
  }
}`
