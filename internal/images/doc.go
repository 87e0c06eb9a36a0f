// Package images picks cover and portrait images and caps oversized image
// galleries.
//
// Selection is best-effort and never fails a build: an exact basename match
// wins, then the first image with the wanted orientation, then the first
// candidate. Orientation probing reads only the image header and honours EXIF
// rotation. Sampling is a pure function so repeated runs keep the same
// gallery.
package images
