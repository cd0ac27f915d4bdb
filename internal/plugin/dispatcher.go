package plugin

import (
	"fmt"
	"maps"
	"slices"

	"github.com/tliron/commonlog"

	"wordcomplete/internal/delta"
)

// ViewInfo is the bookkeeping kept for an open view. It never holds document
// text; everything else is queried from the host on demand.
type ViewInfo struct {
	ID      ViewID
	Path    string
	Rev     uint64
	BufSize int
	Syntax  string
	Config  map[string]any
}

// Host builds the transport-specific View for a single callback.
type Host interface {
	View(info ViewInfo) View
}

// UpdateParams describes a document change reported by the host.
type UpdateParams struct {
	Delta    *delta.Delta
	NewLen   int
	Rev      uint64
	EditType string
	Author   string
}

// Dispatcher routes host notifications and requests to a Plugin. Calls must
// be serialized by the caller; the dispatcher does no locking.
type Dispatcher struct {
	plugin Plugin
	views  map[ViewID]*ViewInfo
	log    commonlog.Logger
}

// NewDispatcher creates a dispatcher driving p.
func NewDispatcher(p Plugin) *Dispatcher {
	return &Dispatcher{
		plugin: p,
		views:  make(map[ViewID]*ViewInfo),
		log:    commonlog.GetLogger("wordcomplete.dispatcher"),
	}
}

// Open starts a view session and notifies the plugin.
func (d *Dispatcher) Open(host Host, info ViewInfo) error {
	if _, exists := d.views[info.ID]; exists {
		return &RequestError{Method: "new_view", Err: fmt.Errorf("%w: %s", ErrViewAlreadyOpen, info.ID)}
	}
	if info.Config == nil {
		info.Config = map[string]any{}
	}
	d.views[info.ID] = &info
	d.log.Debugf("opened view %s (%s)", info.ID, info.Path)

	return d.call("new_view", host, &info, func(v View) {
		d.plugin.NewView(v)
	})
}

// Close ends a view session. Later calls naming the view fail with ErrUnknownView.
func (d *Dispatcher) Close(host Host, id ViewID) error {
	info, err := d.lookup("did_close", id)
	if err != nil {
		return err
	}
	err = d.call("did_close", host, info, func(v View) {
		d.plugin.DidClose(v)
	})
	delete(d.views, id)
	return err
}

// Save records the view's new path and passes the previous one to the plugin.
func (d *Dispatcher) Save(host Host, id ViewID, path string) error {
	info, err := d.lookup("did_save", id)
	if err != nil {
		return err
	}
	previous := info.Path
	info.Path = path

	return d.call("did_save", host, info, func(v View) {
		d.plugin.DidSave(v, previous)
	})
}

// ConfigChanged merges changed keys into the view's config table.
func (d *Dispatcher) ConfigChanged(host Host, id ViewID, changes map[string]any) error {
	info, err := d.lookup("config_changed", id)
	if err != nil {
		return err
	}
	maps.Copy(info.Config, changes)

	return d.call("config_changed", host, info, func(v View) {
		d.plugin.ConfigChanged(v, changes)
	})
}

// Update records the new revision and hands the change to the plugin.
func (d *Dispatcher) Update(host Host, id ViewID, params UpdateParams) error {
	info, err := d.lookup("update", id)
	if err != nil {
		return err
	}
	info.Rev = params.Rev
	info.BufSize = params.NewLen

	return d.call("update", host, info, func(v View) {
		d.plugin.Update(v, params.Delta, params.EditType, params.Author)
	})
}

// Completions asks the plugin for completions at offset. The returned
// response is always well formed, even when err is non-nil.
func (d *Dispatcher) Completions(host Host, id ViewID, requestID, offset int) (CompletionResponse, error) {
	resp := CompletionResponse{Items: []CompletionItem{}}
	info, err := d.lookup("completions", id)
	if err != nil {
		return resp, err
	}

	err = d.call("completions", host, info, func(v View) {
		resp = d.plugin.Completions(v, requestID, offset)
	})
	if resp.Items == nil {
		resp.Items = []CompletionItem{}
	}
	return resp, err
}

// Views returns the IDs of all open views in sorted order.
func (d *Dispatcher) Views() []ViewID {
	return slices.Sorted(maps.Keys(d.views))
}

// Info returns the bookkeeping for an open view.
func (d *Dispatcher) Info(id ViewID) (ViewInfo, bool) {
	info, ok := d.views[id]
	if !ok {
		return ViewInfo{}, false
	}
	return *info, true
}

func (d *Dispatcher) lookup(method string, id ViewID) (*ViewInfo, error) {
	info, ok := d.views[id]
	if !ok {
		return nil, &RequestError{Method: method, Err: fmt.Errorf("%w: %s", ErrUnknownView, id)}
	}
	return info, nil
}

// call lends a view to fn and revokes it when fn returns. A panic in the
// plugin is turned into a FaultError.
func (d *Dispatcher) call(method string, host Host, info *ViewInfo, fn func(View)) (err error) {
	v := &borrowedView{view: host.View(*info)}
	defer v.release()
	defer func() {
		if r := recover(); r != nil {
			d.log.Errorf("%s on view %s panicked: %v", method, info.ID, r)
			err = &FaultError{Method: method, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	fn(v)
	return nil
}

// borrowedView wraps a host view so it stops working once its callback ends.
type borrowedView struct {
	view     View
	released bool
}

func (b *borrowedView) release() { b.released = true }

func (b *borrowedView) ID() ViewID { return b.view.ID() }

func (b *borrowedView) Path() string { return b.view.Path() }

func (b *borrowedView) LineOfOffset(offset int) (int, error) {
	if b.released {
		return 0, ErrViewReleased
	}
	return b.view.LineOfOffset(offset)
}

func (b *borrowedView) OffsetOfLine(line int) (int, error) {
	if b.released {
		return 0, ErrViewReleased
	}
	return b.view.OffsetOfLine(line)
}

func (b *borrowedView) GetLine(line int) (string, error) {
	if b.released {
		return "", ErrViewReleased
	}
	return b.view.GetLine(line)
}

func (b *borrowedView) GetDocument() (string, error) {
	if b.released {
		return "", ErrViewReleased
	}
	return b.view.GetDocument()
}

func (b *borrowedView) GetBufferSize() (int, error) {
	if b.released {
		return 0, ErrViewReleased
	}
	return b.view.GetBufferSize()
}

func (b *borrowedView) SubmitEdit(edit Edit) error {
	if b.released {
		return ErrViewReleased
	}
	return b.view.SubmitEdit(edit)
}
