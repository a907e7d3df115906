package http

import (
	"embed"
	"io/fs"
	nethttp "net/http"
	"time"

	"github.com/gofiber/template/html/v2"

	"github.com/Fritz-nvm/management-system/pkg/money"
)

//go:embed views
var viewsFS embed.FS

// NewViews motor de plantillas html/template sobre las vistas embebidas.
func NewViews() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(nethttp.FS(sub), ".html")
	engine.AddFunc("money", money.WithCurrency)
	engine.AddFunc("amount", money.Format)
	engine.AddFunc("date", func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	})
	engine.AddFunc("datetime", func(t time.Time) string { return t.Format("2006-01-02 15:04") })
	engine.AddFunc("fieldError", func(errs map[string]string, field string) string { return errs[field] })
	return engine
}
