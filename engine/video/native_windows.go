package video

const nativeAvailable = true
