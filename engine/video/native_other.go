//go:build !windows

package video

const nativeAvailable = false
