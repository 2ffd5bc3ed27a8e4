package email

import (
	"bytes"
	"fmt"
	"html/template"
)

type Kind string

const (
	KindConfirmation  Kind = "confirmation"
	KindPasswordReset Kind = "password_reset"
)

// Recipient carries what every auth email needs: where to send it, who to greet, which code to show.
type Recipient struct {
	Email string
	Name  string
	Token string
}

type emailTemplate struct {
	subject string
	body    *template.Template
}

var catalog = map[Kind]emailTemplate{
	KindConfirmation: {
		subject: "UpTask - Confirma tu cuenta",
		body: template.Must(template.New("confirmation").Parse(
			`<p>Hola {{.Name}}, has creado una cuenta en UpTask, ya casi está todo listo, solo debes confirmar tu cuenta.</p>
<p>Visita el siguiente enlace:</p>
<a href="{{.Link}}">Confirmar cuenta</a>
<p>El token de confirmación es: <b>{{.Token}}</b></p>
<p>Este token expira en 10 minutos</p>`)),
	},
	KindPasswordReset: {
		subject: "UpTask - Reestablece tu contraseña",
		body: template.Must(template.New("password_reset").Parse(
			`<p>Hola {{.Name}}, has solicitado reestablecer tu contraseña.</p>
<p>Visita el siguiente enlace:</p>
<a href="{{.Link}}">Reestablecer contraseña</a>
<p>El token de confirmación es: <b>{{.Token}}</b></p>
<p>Este token expira en 10 minutos</p>`)),
	},
}

var linkPaths = map[Kind]string{
	KindConfirmation:  "/auth/confirm-account",
	KindPasswordReset: "/auth/new-password",
}

// Render builds the kind email addressed to to.Email. Links point at frontendURL.
func Render(kind Kind, frontendURL string, to Recipient) (Message, error) {
	tpl, ok := catalog[kind]
	if !ok {
		return Message{}, fmt.Errorf("unknown email kind %q", kind)
	}

	var buf bytes.Buffer
	err := tpl.body.Execute(&buf, struct {
		Name  string
		Token string
		Link  string
	}{
		Name:  to.Name,
		Token: to.Token,
		Link:  frontendURL + linkPaths[kind],
	})
	if err != nil {
		return Message{}, fmt.Errorf("render %s: %w", kind, err)
	}
	return Message{Kind: kind, To: to.Email, Subject: tpl.subject, HTML: buf.String()}, nil
}
