package volume

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ayusman/gesturevol/internal/plugin"
)

// PluginName is the plugin that provides the system volume actions.
const PluginName = "system-volume"

// Actions understood by the system-volume plugin.
const (
	ActionGet    = "volume-get"
	ActionSet    = "volume-set"
	ActionMute   = "volume-mute"
	ActionUnmute = "volume-unmute"
)

type scalarParams struct {
	Scalar float64 `json:"scalar"`
}

// PluginBackend drives the system volume through the system-volume plugin.
type PluginBackend struct {
	plugin   *plugin.Plugin
	executor *plugin.Executor
}

// NewPluginBackend finds the system-volume plugin in mgr.
func NewPluginBackend(mgr *plugin.Manager, executor *plugin.Executor) (*PluginBackend, error) {
	p, err := mgr.Get(PluginName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", PluginName, err)
	}
	for _, action := range []string{ActionGet, ActionSet, ActionMute, ActionUnmute} {
		if !p.Manifest.Supports(action) {
			return nil, fmt.Errorf("%s: manifest does not list %q", PluginName, action)
		}
	}
	return &PluginBackend{plugin: p, executor: executor}, nil
}

// ApplyScalar sets the output volume.
func (b *PluginBackend) ApplyScalar(scalar float64) error {
	params, err := json.Marshal(scalarParams{Scalar: scalar})
	if err != nil {
		return err
	}
	_, err = b.call(ActionSet, params)
	return err
}

// ReadScalar returns the current output volume.
func (b *PluginBackend) ReadScalar() (float64, error) {
	data, err := b.call(ActionGet, nil)
	if err != nil {
		return 0, err
	}

	var out scalarParams
	if err := json.Unmarshal(data, &out); err != nil {
		return 0, fmt.Errorf("%s: parse %s data: %w", PluginName, ActionGet, err)
	}
	return out.Scalar, nil
}

// SetMute mutes or unmutes the output.
func (b *PluginBackend) SetMute(muted bool) error {
	action := ActionUnmute
	if muted {
		action = ActionMute
	}
	_, err := b.call(action, nil)
	return err
}

func (b *PluginBackend) call(action string, params json.RawMessage) (json.RawMessage, error) {
	resp, err := b.executor.Execute(context.Background(), b.plugin, &plugin.Request{
		Action: action,
		Params: params,
	})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("%s %s: %s", PluginName, action, resp.Error)
	}
	return resp.Data, nil
}
