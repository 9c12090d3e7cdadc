package httpx

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/target/membergate/internal/domain/model"
)

// The gateway owns only these bare-bones pages; anything richer belongs to a
// separate frontend. Templates are inlined so the binary stays self-contained.
const pageTemplates = `
{{define "landing-body"}}
<a href="/signup"><button>Sign Up</button></a>
<a href="/login"><button>Log In</button></a>
{{end}}

{{define "signup-body"}}
{{if .Message}}<p>{{.Message}}</p>{{end}}
<h1>Sign Up</h1>
<form method="POST" action="/submitSignup">
<input name="username" type="text" placeholder="name">
<input name="email" type="email" placeholder="email">
<input name="password" type="password" placeholder="password">
<button>Submit</button>
</form>
{{end}}

{{define "login-body"}}
{{if .Message}}<p>{{.Message}}</p>{{end}}
<h1>Log In</h1>
<form method="POST" action="/submitLogin">
<input name="email" type="email" placeholder="email">
<input name="password" type="password" placeholder="password">
<button>Submit</button>
</form>
{{end}}

{{define "members-body"}}
<h1>Hello {{.Name}}</h1>
<img src="/thug{{.RandomInteger}}.jpeg">
<a href="/logout"><button>Log Out</button></a>
{{end}}

{{define "admin-body"}}
<h1>Admin</h1>
<table>
<tr><th>Name</th><th>Email</th><th>Admin</th></tr>
{{range .Users}}<tr><td>{{.Username}}</td><td>{{.Email}}</td><td>{{.Admin}}</td></tr>{{end}}
</table>
<form method="POST" action="/makeAdmin">
<input name="email" type="email" placeholder="email">
<button>Toggle admin</button>
</form>
{{end}}

{{define "message-body"}}
<h1>{{.Message}}</h1>
<a href="{{.BackHref}}"><button>Back</button></a>
{{end}}

{{define "notfound-body"}}404{{end}}
`

// pageData is the single data shape handed to every page template.
type pageData struct {
	Title         string
	Message       string
	BackHref      string
	Name          string
	RandomInteger int
	Users         []model.User
}

// Renderer writes the gateway's HTML pages. Handlers depend on this narrow
// interface so tests can swap in a recording fake.
type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data pageData)
}

// HTMLRenderer renders the inlined page templates.
type HTMLRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// NewHTMLRenderer parses the inline templates. Parse errors are programmer
// errors and panic at startup.
func NewHTMLRenderer(logger *slog.Logger) *HTMLRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTMLRenderer{
		t:      template.Must(template.New("pages").Parse(pageTemplates)),
		logger: logger,
	}
}

// Render executes the named "<page>-body" template inside the layout.
// Output is buffered to avoid partial writes on template errors.
func (r *HTMLRenderer) Render(w http.ResponseWriter, status int, page string, data pageData) {
	if data.Title == "" {
		data.Title = page
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><head><title>")
	template.HTMLEscape(&buf, []byte(data.Title))
	buf.WriteString("</title></head><body>\n")

	var body bytes.Buffer
	if err := r.t.ExecuteTemplate(&body, page+"-body", data); err != nil {
		r.logger.Error("render page failed", "page", page, "error", err)
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}
	buf.Write(body.Bytes())
	buf.WriteString("\n</body></html>")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		// Client likely went away; nothing left to do.
		return
	}
}
