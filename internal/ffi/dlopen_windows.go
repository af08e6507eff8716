//go:build windows

package ffi

import "golang.org/x/sys/windows"

func openLibrary(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}

func resolveSymbol(handle uintptr, name string) error {
	_, err := windows.GetProcAddress(windows.Handle(handle), name)
	return err
}
