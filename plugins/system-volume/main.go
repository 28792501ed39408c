// Package main provides the system-volume plugin. It reads and sets the
// output volume with osascript on macOS, amixer on Linux and the Core Audio
// endpoint volume on Windows.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type scalarParams struct {
	Scalar float64 `json:"scalar"`
}

var errUnsupported = fmt.Errorf("volume control is not supported on %s", runtime.GOOS)

// actionHandler handles one action and returns the response data, if any.
type actionHandler func(params json.RawMessage) (any, error)

// actionHandlers maps action names to their handler functions.
var actionHandlers = map[string]actionHandler{
	"volume-get":    volumeGet,
	"volume-set":    volumeSet,
	"volume-mute":   func(json.RawMessage) (any, error) { return nil, setMuted(true) },
	"volume-unmute": func(json.RawMessage) (any, error) { return nil, setMuted(false) },
}

// run executes a command and returns its combined output. Tests replace it.
var run = func(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

func main() {
	handle(os.Stdin, os.Stdout)
}

// handle decodes one request from r and writes one response to w.
func handle(r io.Reader, w io.Writer) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		writeResponse(w, Response{Error: fmt.Sprintf("failed to decode request: %v", err)})
		return
	}

	handler, ok := actionHandlers[req.Action]
	if !ok {
		writeResponse(w, Response{Error: fmt.Sprintf("unknown action: %s", req.Action)})
		return
	}

	data, err := handler(req.Params)
	if err != nil {
		writeResponse(w, Response{Error: fmt.Sprintf("action %s failed: %v", req.Action, err)})
		return
	}

	resp := Response{Success: true}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			writeResponse(w, Response{Error: fmt.Sprintf("failed to encode data: %v", err)})
			return
		}
		resp.Data = raw
	}
	writeResponse(w, resp)
}

func writeResponse(w io.Writer, resp Response) {
	json.NewEncoder(w).Encode(resp)
}

func volumeGet(json.RawMessage) (any, error) {
	percent, err := readPercent()
	if err != nil {
		return nil, err
	}
	return scalarParams{Scalar: float64(percent) / 100}, nil
}

func volumeSet(params json.RawMessage) (any, error) {
	var p scalarParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if math.IsNaN(p.Scalar) || p.Scalar < 0 || p.Scalar > 1 {
		return nil, fmt.Errorf("scalar %v outside [0, 1]", p.Scalar)
	}
	return nil, writePercent(int(math.Round(p.Scalar * 100)))
}

// mixer drives the default output device of one platform.
type mixer interface {
	Percent() (int, error)
	SetPercent(percent int) error
	SetMuted(muted bool) error
}

// mixerFor returns the mixer for goos.
func mixerFor(goos string) mixer {
	switch goos {
	case "darwin":
		return osascriptMixer{}
	case "linux":
		return amixerMixer{}
	case "windows":
		return endpointMixer{}
	}
	return unsupportedMixer{}
}

// sysMixer is the mixer for this platform. Tests replace it.
var sysMixer = mixerFor(runtime.GOOS)

func readPercent() (int, error)      { return sysMixer.Percent() }
func writePercent(percent int) error { return sysMixer.SetPercent(percent) }
func setMuted(muted bool) error      { return sysMixer.SetMuted(muted) }

type osascriptMixer struct{}

func (osascriptMixer) Percent() (int, error) {
	out, err := run("osascript", "-e", "output volume of (get volume settings)")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(out))
}

func (osascriptMixer) SetPercent(percent int) error {
	_, err := run("osascript", "-e", fmt.Sprintf("set volume output volume %d", percent))
	return err
}

func (osascriptMixer) SetMuted(muted bool) error {
	_, err := run("osascript", "-e", fmt.Sprintf("set volume output muted %t", muted))
	return err
}

type amixerMixer struct{}

func (amixerMixer) Percent() (int, error) {
	out, err := run("amixer", "sget", "Master")
	if err != nil {
		return 0, err
	}
	return parseAmixerPercent(out)
}

func (amixerMixer) SetPercent(percent int) error {
	_, err := run("amixer", "-q", "sset", "Master", fmt.Sprintf("%d%%", percent))
	return err
}

func (amixerMixer) SetMuted(muted bool) error {
	state := "unmute"
	if muted {
		state = "mute"
	}
	_, err := run("amixer", "-q", "sset", "Master", state)
	return err
}

// endpoint is the master volume control of the default render device.
type endpoint interface {
	Scalar() (float32, error)
	SetScalar(level float32) error
	SetMute(muted bool) error
	Close()
}

// openEndpoint opens the default render device. Tests replace it.
var openEndpoint = openDefaultEndpoint

// endpointMixer drives the Windows master volume through the Core Audio
// endpoint. Each call opens and releases the device.
type endpointMixer struct{}

func withEndpoint(fn func(endpoint) error) error {
	ep, err := openEndpoint()
	if err != nil {
		return err
	}
	defer ep.Close()
	return fn(ep)
}

func (endpointMixer) Percent() (int, error) {
	var percent int
	err := withEndpoint(func(ep endpoint) error {
		level, err := ep.Scalar()
		if err != nil {
			return err
		}
		percent = int(math.Round(float64(level) * 100))
		return nil
	})
	return percent, err
}

func (endpointMixer) SetPercent(percent int) error {
	return withEndpoint(func(ep endpoint) error {
		return ep.SetScalar(float32(percent) / 100)
	})
}

func (endpointMixer) SetMuted(muted bool) error {
	return withEndpoint(func(ep endpoint) error {
		return ep.SetMute(muted)
	})
}

type unsupportedMixer struct{}

func (unsupportedMixer) Percent() (int, error) { return 0, errUnsupported }
func (unsupportedMixer) SetPercent(int) error  { return errUnsupported }
func (unsupportedMixer) SetMuted(bool) error   { return errUnsupported }

var amixerPercent = regexp.MustCompile(`\[(\d{1,3})%\]`)

// parseAmixerPercent returns the first channel's percentage from
// `amixer sget` output.
func parseAmixerPercent(out string) (int, error) {
	m := amixerPercent.FindStringSubmatch(out)
	if m == nil {
		return 0, errors.New("no volume percentage in amixer output")
	}
	return strconv.Atoi(m[1])
}
