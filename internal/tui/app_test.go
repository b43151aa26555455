package tui

import (
	"os"
	"syscall"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestForwardSignals(t *testing.T) {
	tests := []struct {
		name     string
		signal   bool
		wantQuit bool
	}{
		{"signal quits", true, true},
		{"done returns", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := make(chan os.Signal, 1)
			done := make(chan struct{})
			sent := make(chan tea.Msg, 1)

			returned := make(chan struct{})
			go func() {
				forwardSignals(sig, done, func(msg tea.Msg) { sent <- msg })
				close(returned)
			}()

			if tt.signal {
				sig <- syscall.SIGTERM
			} else {
				close(done)
			}

			select {
			case <-returned:
			case <-time.After(time.Second):
				t.Fatal("forwardSignals did not return")
			}
			select {
			case msg := <-sent:
				if _, ok := msg.(tea.QuitMsg); !ok || !tt.wantQuit {
					t.Errorf("sent %T, want quit = %v", msg, tt.wantQuit)
				}
			default:
				if tt.wantQuit {
					t.Error("no quit message sent")
				}
			}
		})
	}
}
