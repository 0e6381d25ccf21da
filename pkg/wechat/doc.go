// Package wechat provides a high-level API for decrypting WeChat Windows V4
// data files: SQLCipher-style encrypted SQLite databases and "dat" image
// containers.
//
// The package wraps the lower-level internal codecs behind one-call
// functions that accept hex-encoded keys and filesystem paths:
//
//	stats, err := wechat.DecryptDatabase("MicroMsg.db", "out/MicroMsg.db", hexKey, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("decrypted %d pages\n", stats.Pages)
//
// Errors carry a machine-readable kind; use wechat.KindOf and
// wechat.IsWrongKey to classify failures without string matching.
package wechat
