//go:build windows

package main

import (
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"
)

// wasapiEndpoint holds an IAudioEndpointVolume on a COM-initialized thread.
type wasapiEndpoint struct {
	aev *wca.IAudioEndpointVolume
}

func openDefaultEndpoint() (ep endpoint, err error) {
	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	defer func() {
		if err != nil {
			ole.CoUninitialize()
			runtime.UnlockOSThread()
		}
	}()

	var mmde *wca.IMMDeviceEnumerator
	if err := wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &mmde); err != nil {
		return nil, err
	}
	defer mmde.Release()

	var mmd *wca.IMMDevice
	if err := mmde.GetDefaultAudioEndpoint(wca.ERender, wca.EConsole, &mmd); err != nil {
		return nil, err
	}
	defer mmd.Release()

	var aev *wca.IAudioEndpointVolume
	if err := mmd.Activate(wca.IID_IAudioEndpointVolume, wca.CLSCTX_ALL, nil, &aev); err != nil {
		return nil, err
	}
	return &wasapiEndpoint{aev: aev}, nil
}

func (e *wasapiEndpoint) Scalar() (float32, error) {
	var level float32
	if err := e.aev.GetMasterVolumeLevelScalar(&level); err != nil {
		return 0, err
	}
	return level, nil
}

func (e *wasapiEndpoint) SetScalar(level float32) error {
	return e.aev.SetMasterVolumeLevelScalar(level, nil)
}

func (e *wasapiEndpoint) SetMute(muted bool) error {
	return e.aev.SetMute(muted, nil)
}

func (e *wasapiEndpoint) Close() {
	e.aev.Release()
	ole.CoUninitialize()
	runtime.UnlockOSThread()
}
