// Package gallery renders the static index.html of a gallery directory.
//
// A page lists every processable media file below the directory whose
// thumbnail exists. Each item links the original and its thumbnail under
// <base_url>/galleries/ and carries the intrinsic pixel size the lightbox
// needs; videos are marked with data-pswp-type="video".
package gallery
