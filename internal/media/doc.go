// Package media handles individual media files of a gallery tree.
//
// It decides which files are processable (content sniffing plus the
// thumbnail_ and _original naming rules), derives the sibling thumbnail
// path, strips EXIF data through exiftool and produces thumbnails:
//   - Images: decode-time shrink through libvips, imaging as fallback
//   - Videos: a single frame captured by an external VideoConverter
//
// A thumbnail that already exists is never regenerated.
package media
