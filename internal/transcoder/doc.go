// Package transcoder wraps the FFmpeg command line tools.
//
// It supports:
//   - Capturing a single scaled frame of a video as its thumbnail
//   - Probing the width and height of the first video stream
//
// ffmpeg and ffprobe must be installed and available in the system PATH,
// or their locations set on the Transcoder.
package transcoder
