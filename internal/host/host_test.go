package host

import (
	"slices"
	"sync"
	"testing"

	"github.com/Iron-Ham/panelkit/internal/commands"
	"github.com/Iron-Ham/panelkit/internal/component"
	"github.com/Iron-Ham/panelkit/internal/errors"
	"github.com/Iron-Ham/panelkit/internal/event"
	tea "github.com/charmbracelet/bubbletea"
)

type panel struct {
	component.Base
	ns         string
	wrapper    string
	tabs       []string
	landing    string
	vetoed     bool
	rendered   []string
	shortcutFn func()
}

func (p *panel) Namespace() string           { return p.ns }
func (p *panel) TabsWrapperSelector() string { return p.wrapper }
func (p *panel) RenderTab(id string)         { p.rendered = append(p.rendered, id) }
func (p *panel) Dependency() bool            { return !p.vetoed }
func (p *panel) DefaultRouteSuffix() string  { return p.landing }

func (p *panel) InitialTabs() []component.TabEntry {
	out := make([]component.TabEntry, 0, len(p.tabs))
	for _, id := range p.tabs {
		out = append(out, component.TabEntry{ID: id, Config: component.TabConfig{Title: id}})
	}
	return out
}

func (p *panel) Commands() []component.Command {
	return []component.Command{{
		Name: "ping",
		Handler: func(args commands.Args) (any, error) {
			return "pong:" + p.ns, nil
		},
	}}
}

func (p *panel) Shortcuts() []component.Shortcut {
	if p.shortcutFn == nil {
		return nil
	}
	return []component.Shortcut{{ID: "go", Keys: []string{"f2"}, Handler: p.shortcutFn}}
}

func TestHost_Mount(t *testing.T) {
	h := New(Options{})

	var mounted []string
	h.Bus().Subscribe(event.TypeComponentMounted, func(e event.Event) {
		mounted = append(mounted, e.(event.ComponentMountedEvent).Namespace)
	})

	c, err := h.Mount(&panel{ns: "panel/general", wrapper: "general", tabs: []string{"settings", "style"}})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if c.Manager() != h {
		t.Error("the host should be the component's manager")
	}
	if !h.Router().Has("panel/general/settings") || !h.Dispatcher().Has("panel/general/ping") {
		t.Error("Mount should register routes and commands")
	}
	if items := h.Strip().Items("general"); len(items) != 2 || items[1].ID != "style" {
		t.Errorf("strip items = %v", items)
	}
	if !slices.Equal(mounted, []string{"panel/general"}) {
		t.Errorf("mounted events = %v", mounted)
	}
	if got, ok := h.Component("panel/general"); !ok || got != c {
		t.Error("Component() should return the mounted component")
	}
}

func TestHost_MountErrors(t *testing.T) {
	h := New(Options{})
	if _, err := h.Mount(&panel{ns: "panel/general"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		def     component.Definition
		wantErr error
	}{
		{"duplicate", &panel{ns: "panel/general"}, errors.ErrComponentExists},
		{"base definition", component.Base{}, errors.ErrNotImplemented},
		{"nil definition", nil, errors.ErrNotImplemented},
		{"bad namespace", &panel{ns: "panel/"}, errors.ErrInvalidNamespace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Mount(tt.def)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Mount() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	var exists *errors.AlreadyExistsError
	_, err := h.Mount(&panel{ns: "panel/general"})
	if !errors.As(err, &exists) {
		t.Errorf("duplicate mount should be an AlreadyExistsError, got %T", err)
	}
	if len(h.Components()) != 1 {
		t.Errorf("failed mounts should not register, got %d components", len(h.Components()))
	}
}

func TestHost_MountSameNamespaceConcurrently(t *testing.T) {
	h := New(Options{})

	const n = 8
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		winner *component.Component
		wins   int
	)
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := h.Mount(&panel{ns: "panel/dup", tabs: []string{"a", "b"}})
			if err != nil {
				errs <- err
				return
			}
			mu.Lock()
			winner, wins = c, wins+1
			mu.Unlock()
		}()
	}
	wg.Wait()
	close(errs)

	if wins != 1 {
		t.Fatalf("%d mounts succeeded, want 1", wins)
	}
	for err := range errs {
		if !errors.Is(err, errors.ErrComponentExists) {
			t.Errorf("losing Mount() error = %v, want ErrComponentExists", err)
		}
	}
	if len(h.Components()) != 1 {
		t.Errorf("got %d components, want 1", len(h.Components()))
	}

	// The tab routes must belong to the registered component.
	if err := h.Navigate("panel/dup/b"); err != nil {
		t.Fatal(err)
	}
	if winner.CurrentTab() != "b" {
		t.Errorf("registered component current tab = %q, want b", winner.CurrentTab())
	}
}

func TestHost_FailedMountReleasesNamespace(t *testing.T) {
	h := New(Options{})

	for i := range 2 {
		_, err := h.Mount(&panel{ns: "panel/"})
		if !errors.Is(err, errors.ErrInvalidNamespace) {
			t.Errorf("attempt %d: Mount() error = %v, want ErrInvalidNamespace", i, err)
		}
	}
	if len(h.Components()) != 0 {
		t.Errorf("got %d components, want 0", len(h.Components()))
	}
}

func TestHost_TabChangesRefreshStrip(t *testing.T) {
	h := New(Options{})
	c, err := h.Mount(&panel{ns: "panel/general", wrapper: "general", tabs: []string{"settings"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h.Open("panel/general"); err != nil {
		t.Fatal(err)
	}

	c.AddTab("extra", component.TabConfig{Title: "Extra"})
	if !h.Strip().Select("general", "extra") {
		t.Fatal("an added tab should be selectable in the strip")
	}
	if c.CurrentTab() != "extra" {
		t.Errorf("CurrentTab() = %q, want extra", c.CurrentTab())
	}

	c.AddTabAt("first", component.TabConfig{Title: "First"}, 0)
	c.RemoveTab("settings")
	var ids []string
	for _, it := range h.Strip().Items("general") {
		ids = append(ids, it.ID)
	}
	if !slices.Equal(ids, []string{"first", "extra"}) {
		t.Errorf("strip items = %v", ids)
	}
}

func TestHost_OpenLandsOnTab(t *testing.T) {
	tests := []struct {
		name    string
		landing string
		want    string
	}{
		{"first tab", "", "settings"},
		{"default route", "style", "style"},
		{"unknown default route falls back", "missing", "settings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(Options{})
			def := &panel{ns: "panel/general", tabs: []string{"settings", "style"}, landing: tt.landing}
			c, err := h.Mount(def)
			if err != nil {
				t.Fatal(err)
			}

			ok, err := h.Open("panel/general")
			if err != nil || !ok {
				t.Fatalf("Open() = %v, %v", ok, err)
			}
			if c.CurrentTab() != tt.want {
				t.Errorf("CurrentTab() = %q, want %q", c.CurrentTab(), tt.want)
			}
			if !c.IsActive() || !h.Router().IsCurrent(c.TabRoute(tt.want)) {
				t.Error("opened panel should be active and own the current route")
			}
			if h.Strip().Active(c.TabsWrapper()) != tt.want {
				t.Errorf("strip active = %q", h.Strip().Active(c.TabsWrapper()))
			}
		})
	}
}

func TestHost_OpenCloseEvents(t *testing.T) {
	h := New(Options{})
	if _, err := h.Mount(&panel{ns: "panel/general", tabs: []string{"a"}}); err != nil {
		t.Fatal(err)
	}

	var got []string
	h.Bus().Subscribe(event.TypePanelOpened, func(e event.Event) { got = append(got, "opened") })
	h.Bus().Subscribe(event.TypePanelClosed, func(e event.Event) { got = append(got, "closed") })

	if ok, _ := h.Close("panel/general"); ok {
		t.Error("closing a closed panel should report false")
	}
	h.Open("panel/general")
	if ok, _ := h.Close("panel/general"); !ok {
		t.Error("closing an open panel should report true")
	}
	if _, ok := h.Router().Current("panel"); ok {
		t.Error("closing should clear the panel's current route")
	}

	if !slices.Equal(got, []string{"opened", "closed"}) {
		t.Errorf("events = %v", got)
	}
}

func TestHost_OpenVetoedAndUnknown(t *testing.T) {
	h := New(Options{})
	if _, err := h.Mount(&panel{ns: "panel/locked", vetoed: true}); err != nil {
		t.Fatal(err)
	}

	ok, err := h.Open("panel/locked")
	if err != nil || ok {
		t.Errorf("vetoed Open() = %v, %v", ok, err)
	}

	if _, err := h.Open("panel/missing"); !errors.IsSemanticError(err) {
		t.Errorf("Open() of an unknown panel should be a not-found error, got %v", err)
	}
	if _, err := h.Close("panel/missing"); err == nil {
		t.Error("Close() of an unknown panel should fail")
	}
}

func TestHost_SwitchingPanelsInOneContainer(t *testing.T) {
	h := New(Options{})
	general, _ := h.Mount(&panel{ns: "panel/general", tabs: []string{"a"}})
	history, _ := h.Mount(&panel{ns: "panel/history", tabs: []string{"b"}})

	h.Open("panel/general")
	if err := h.Navigate("panel/history/b"); err != nil {
		t.Fatal(err)
	}

	if general.IsActive() {
		t.Error("navigating away should inactivate the previous owner")
	}
	if !history.IsActive() || history.CurrentTab() != "b" {
		t.Error("navigated panel should be active on its tab")
	}
}

func TestHost_RunAndShortcuts(t *testing.T) {
	h := New(Options{})
	fired := 0
	if _, err := h.Mount(&panel{ns: "panel/general", tabs: []string{"a"}, shortcutFn: func() { fired++ }}); err != nil {
		t.Fatal(err)
	}

	got, err := h.Run("panel/general/ping", nil)
	if err != nil || got != "pong:panel/general" {
		t.Errorf("Run() = %v, %v", got, err)
	}

	f2 := tea.KeyMsg{Type: tea.KeyF2}
	if h.Keys().Handle(f2) {
		t.Error("shortcut of an inactive panel should not fire")
	}
	h.Open("panel/general")
	if !h.Keys().Handle(f2) || fired != 1 {
		t.Error("shortcut of an active panel should fire")
	}
}

func TestHost_Shutdown(t *testing.T) {
	h := New(Options{})
	c, _ := h.Mount(&panel{ns: "panel/general", tabs: []string{"a"}})
	h.Open("panel/general")

	h.Shutdown()
	h.Shutdown()

	if c.IsOpen() {
		t.Error("Shutdown should close open panels")
	}
	if h.Bus().SubscriptionCount() != 0 {
		t.Error("Shutdown should clear bus subscriptions")
	}

	if _, err := h.Mount(&panel{ns: "panel/other"}); !errors.Is(err, errors.ErrHostClosed) {
		t.Errorf("Mount after Shutdown error = %v", err)
	}
	if _, err := h.Open("panel/general"); !errors.Is(err, errors.ErrHostClosed) {
		t.Errorf("Open after Shutdown error = %v", err)
	}
	if err := h.Navigate("panel/general/a"); !errors.Is(err, errors.ErrHostClosed) {
		t.Errorf("Navigate after Shutdown error = %v", err)
	}
	if _, err := h.Run("panel/general/ping", nil); !errors.Is(err, errors.ErrHostClosed) {
		t.Errorf("Run after Shutdown error = %v", err)
	}
}
