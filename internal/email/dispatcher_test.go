package email_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/ErlanBelekov/uptask/internal/email"
)

type fakeSender struct {
	mu      sync.Mutex
	sent    []email.Message
	err     error
	ctxErrs []error
}

func (s *fakeSender) Send(ctx context.Context, msg email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	return s.err
}

func TestDispatch_SendsRenderedConfirmation(t *testing.T) {
	sender := &fakeSender{}
	d := email.NewDispatcher(sender, "http://front.test", slog.Default())

	d.Dispatch(context.Background(), email.KindConfirmation, email.Recipient{
		Email: "a@x.com", Name: "A", Token: "123456",
	})
	d.Wait()

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.sent))
	}
	got := sender.sent[0]
	if got.To != "a@x.com" || got.Kind != email.KindConfirmation {
		t.Errorf("to = %q, kind = %q", got.To, got.Kind)
	}
	if !strings.Contains(got.Subject, "Confirma tu cuenta") {
		t.Errorf("subject = %q", got.Subject)
	}
	for _, want := range []string{"123456", "http://front.test/auth/confirm-account", "Hola A"} {
		if !strings.Contains(got.HTML, want) {
			t.Errorf("body missing %q: %s", want, got.HTML)
		}
	}
}

func TestDispatch_PasswordResetLink(t *testing.T) {
	sender := &fakeSender{}
	d := email.NewDispatcher(sender, "http://front.test", slog.Default())

	d.Dispatch(context.Background(), email.KindPasswordReset, email.Recipient{Email: "a@x.com", Name: "A", Token: "654321"})
	d.Wait()

	if len(sender.sent) != 1 || !strings.Contains(sender.sent[0].HTML, "http://front.test/auth/new-password") {
		t.Fatalf("unexpected mail: %+v", sender.sent)
	}
}

func TestDispatch_SenderErrorIsSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	d := email.NewDispatcher(sender, "http://front.test", slog.Default())

	d.Dispatch(context.Background(), email.KindConfirmation, email.Recipient{Email: "a@x.com"})
	d.Wait()

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1 attempt", len(sender.sent))
	}
}

func TestDispatch_SurvivesCallerCancellation(t *testing.T) {
	sender := &fakeSender{}
	d := email.NewDispatcher(sender, "http://front.test", slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Dispatch(ctx, email.KindConfirmation, email.Recipient{Email: "a@x.com"})
	d.Wait()

	if len(sender.ctxErrs) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.ctxErrs))
	}
	if err := sender.ctxErrs[0]; err != nil {
		t.Errorf("send context already done: %v", err)
	}
}

func TestRender_EscapesName(t *testing.T) {
	msg, err := email.Render(email.KindConfirmation, "", email.Recipient{Name: "<script>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Errorf("name was not escaped: %s", msg.HTML)
	}
}

func TestRender_UnknownKind(t *testing.T) {
	if _, err := email.Render(email.Kind("nope"), "", email.Recipient{}); err == nil {
		t.Error("want error for unknown kind")
	}
}
