// These constants declarations are lifted from the
// go9p library. As such, the license header and full
// license file are kept intact here and at LICENSE.go9p.

// Copyright 2009 The Go9p Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.go9p file.
package proto

// Qid type bits, set in a Qid's one-byte Type field.
const (
	QTDIR     = 0x80 // directories
	QTAPPEND  = 0x40 // append only files
	QTEXCL    = 0x20 // exclusive use files
	QTMOUNT   = 0x10 // mounted channel
	QTAUTH    = 0x08 // authentication file
	QTTMP     = 0x04 // non-backed-up file
	QTSYMLINK = 0x02 // symbolic link
	QTLINK    = 0x01 // hard link
	QTFILE    = 0x00
)

const (
	NOTAG uint16 = 0xFFFF     // no tag specified
	NOFID uint32 = 0xFFFFFFFF // no fid specified
	NOUID uint32 = 0xFFFFFFFF // no uid specified
)

// MAXWELEM is the maximum number of path elements in a single walk
// request.
const MAXWELEM = 16

const (
	// IOHDRSZ is the non-data overhead of a Twrite/Rread message:
	// size[4] type[1] tag[2] fid[4] offset[8] count[4].
	IOHDRSZ = 23
	// DefaultMsize is used when a caller does not negotiate one.
	DefaultMsize = 8192 + IOHDRSZ
)
