package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdeskhq/askdesk/pkg/dialog"
	"github.com/askdeskhq/askdesk/pkg/domain"
)

// presentNext resolves the next pending request of svc with the presenter.
func presentNext(t *testing.T, p *Presenter, svc *dialog.Service) {
	t.Helper()
	select {
	case req := <-svc.Requests():
		p.Present(req)
	default:
		t.Fatal("no pending dialog request")
	}
}

func TestPresenterConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false}, // EOF counts as dismissal
	}
	for _, tc := range cases {
		var out bytes.Buffer
		p := NewPresenter(strings.NewReader(tc.input), &out)
		svc := dialog.NewService()

		done := make(chan bool, 1)
		go func() {
			ok, err := svc.Confirm(context.Background(), "Proceed?", domain.DialogOptions{})
			require.NoError(t, err)
			done <- ok
		}()

		req := <-svc.Requests()
		p.Present(req)
		assert.Equal(t, tc.want, <-done, "input %q", tc.input)
	}
}

func TestPresenterPrompt(t *testing.T) {
	t.Run("submission", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPresenter(strings.NewReader("hunter2\n"), &out)
		svc := dialog.NewService()

		done := make(chan *string, 1)
		go func() {
			v, err := svc.Prompt(context.Background(), "Password?", domain.DialogOptions{SecretInput: true})
			require.NoError(t, err)
			done <- v
		}()

		p.Present(<-svc.Requests())
		v := <-done
		require.NotNil(t, v)
		assert.Equal(t, "hunter2", *v)
	})

	t.Run("EOF cancels", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPresenter(strings.NewReader(""), &out)
		svc := dialog.NewService()

		done := make(chan *string, 1)
		go func() {
			v, err := svc.Prompt(context.Background(), "Password?", domain.DialogOptions{})
			require.NoError(t, err)
			done <- v
		}()

		p.Present(<-svc.Requests())
		assert.Nil(t, <-done)
	})

	t.Run("empty line is a valid submission", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPresenter(strings.NewReader("\n"), &out)
		svc := dialog.NewService()

		done := make(chan *string, 1)
		go func() {
			v, err := svc.Prompt(context.Background(), "Anything?", domain.DialogOptions{})
			require.NoError(t, err)
			done <- v
		}()

		p.Present(<-svc.Requests())
		v := <-done
		require.NotNil(t, v)
		assert.Empty(t, *v)
	})
}

func TestPresenterAlertShowsMessage(t *testing.T) {
	var out bytes.Buffer
	p := NewPresenter(strings.NewReader("\n"), &out)
	svc := dialog.NewService()

	done := make(chan struct{})
	go func() {
		require.NoError(t, svc.Alert(context.Background(), "Heads up.", domain.DialogOptions{}))
		close(done)
	}()

	p.Present(<-svc.Requests())
	<-done
	assert.Contains(t, out.String(), "Heads up.")
	assert.Contains(t, out.String(), "[Notice]")
}
