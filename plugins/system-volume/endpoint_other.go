//go:build !windows

package main

func openDefaultEndpoint() (endpoint, error) {
	return nil, errUnsupported
}
