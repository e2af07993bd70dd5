package dashboard

import "io"

// Renderer is the template engine surface the controller draws pages with.
// The go-template renderer returned by NewTemplateRenderer satisfies it;
// hosts with their own template stack can plug in theirs.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}
