// Package mediatype classifies files found in a creator tree into the media
// kinds the site renderer understands.
//
// Classification is a pure lookup on the lowercase extension, with two
// reservations layered on top: images named after the configured cover or
// portrait basename are held back for cover/portrait selection, and the
// configured README file is held back for the record's info text. Anything
// else that does not match a known extension is ignored without error.
//
//	c := mediatype.NewClassifier("cover", "portrait", "README.md")
//	switch c.Classify("Album 1/track01.mp3") {
//	case mediatype.Audio:
//	    // add to tracks
//	case mediatype.None:
//	    // skip
//	}
package mediatype
