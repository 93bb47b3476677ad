// Package proto implements the 9P2000.L wire format: the message
// kinds, the composite data types carried inside them, and the
// Encoder/Decoder that turn them into framed bytes and back.
//
// The Linux extensions implemented here are documented at
// https://github.com/chaos/diod/blob/master/protocol.md
package proto

// MsgType identifies the kind of a 9P2000.L message. It is the single
// byte that follows a message's 4-byte size prefix. Each request and
// response struct in this package reports its own MsgType via the Body
// interface; these constants are the numeric wire values behind them.
type MsgType uint8

// Message type values. 9P2000's own Topen/Ropen/Tcreate/Rcreate and
// Twstat/Rwstat/Tstat/Rstat are illegal in 9P2000.L; lopen/lcreate and
// getattr/setattr take their place.
const (
	// tlerror never appears on the wire; decoding it is a protocol
	// error. rlerror replaces the 9P2000 Rerror for every failed
	// call: ecode is a Linux errno.
	tlerror MsgType = 6
	rlerror MsgType = 7

	// statfs reports the statfs(2) information for the file system
	// containing fid.
	tstatfs MsgType = 8
	rstatfs MsgType = 9

	// lopen prepares fid for I/O; flags are Linux open(2) flags.
	tlopen MsgType = 12
	rlopen MsgType = 13

	// lcreate creates a regular file name in directory fid and
	// opens it, passing Linux open(2) flags and a mode.
	tlcreate MsgType = 14
	rlcreate MsgType = 15

	// symlink creates a symbolic link name in directory fid
	// pointing at symtgt.
	tsymlink MsgType = 16
	rsymlink MsgType = 17

	// mknod creates a device node name in directory dfid with the
	// given major and minor numbers.
	tmknod MsgType = 18
	rmknod MsgType = 19

	// rename moves fid to name in the directory referenced by dfid.
	// Superseded by renameat but still required.
	trename MsgType = 20
	rrename MsgType = 21

	// readlink returns the target of the symbolic link fid.
	treadlink MsgType = 22
	rreadlink MsgType = 23

	// getattr/setattr fetch and change POSIX stat(2) attributes of
	// fid, selected by a bitmask.
	tgetattr MsgType = 24
	rgetattr MsgType = 25
	tsetattr MsgType = 26
	rsetattr MsgType = 27

	// xattrwalk prepares newfid to read or list the extended
	// attribute name of fid (or all names, if name is empty).
	txattrwalk MsgType = 30
	rxattrwalk MsgType = 31

	// xattrcreate prepares fid to have an extended attribute value
	// written to it via subsequent writes.
	txattrcreate MsgType = 32
	rxattrcreate MsgType = 33

	// readdir returns directory entries from fid, previously opened
	// with lopen. offset is zero on the first call.
	treaddir MsgType = 40
	rreaddir MsgType = 41

	// fsync flushes cached data associated with fid.
	tfsync MsgType = 50
	rfsync MsgType = 51

	// lock/getlock implement POSIX record locking, mirroring
	// fcntl(F_SETLK)/fcntl(F_GETLK).
	tlock    MsgType = 52
	rlock    MsgType = 53
	tgetlock MsgType = 54
	rgetlock MsgType = 55

	// link creates a hard link name in directory dfid pointing at
	// fid.
	tlink MsgType = 70
	rlink MsgType = 71

	// mkdir creates a new directory name in parent dfid.
	tmkdir MsgType = 72
	rmkdir MsgType = 73

	// renameat moves oldname in olddirfid to newname in newdirfid.
	trenameat MsgType = 74
	rrenameat MsgType = 75

	// unlinkat removes name from the directory referenced by dirfd.
	// Any fid open on the removed file is not clunked by this call.
	tunlinkat MsgType = 76
	runlinkat MsgType = 77

	// Session setup, teardown and navigation, shared with base
	// 9P2000.
	tversion MsgType = 100
	rversion MsgType = 101
	tauth    MsgType = 102
	rauth    MsgType = 103
	tattach  MsgType = 104
	rattach  MsgType = 105

	tflush MsgType = 108
	rflush MsgType = 109

	twalk MsgType = 110
	rwalk MsgType = 111

	tread  MsgType = 116
	rread  MsgType = 117
	twrite MsgType = 118
	rwrite MsgType = 119

	tclunk  MsgType = 120
	rclunk  MsgType = 121
	tremove MsgType = 122
	rremove MsgType = 123
)

// VersionL is the only protocol version string this library will
// negotiate by default.
const VersionL = "9P2000.L"

// String renders a MsgType the way the protocol names it, for logging.
func (t MsgType) String() string {
	if s, ok := msgTypeNames[t]; ok {
		return s
	}
	return "Tunknown"
}

var msgTypeNames = map[MsgType]string{
	tlerror: "Tlerror", rlerror: "Rlerror",
	tstatfs: "Tstatfs", rstatfs: "Rstatfs",
	tlopen: "Tlopen", rlopen: "Rlopen",
	tlcreate: "Tlcreate", rlcreate: "Rlcreate",
	tsymlink: "Tsymlink", rsymlink: "Rsymlink",
	tmknod: "Tmknod", rmknod: "Rmknod",
	trename: "Trename", rrename: "Rrename",
	treadlink: "Treadlink", rreadlink: "Rreadlink",
	tgetattr: "Tgetattr", rgetattr: "Rgetattr",
	tsetattr: "Tsetattr", rsetattr: "Rsetattr",
	txattrwalk: "Txattrwalk", rxattrwalk: "Rxattrwalk",
	txattrcreate: "Txattrcreate", rxattrcreate: "Rxattrcreate",
	treaddir: "Treaddir", rreaddir: "Rreaddir",
	tfsync: "Tfsync", rfsync: "Rfsync",
	tlock: "Tlock", rlock: "Rlock",
	tgetlock: "Tgetlock", rgetlock: "Rgetlock",
	tlink: "Tlink", rlink: "Rlink",
	tmkdir: "Tmkdir", rmkdir: "Rmkdir",
	trenameat: "Trenameat", rrenameat: "Rrenameat",
	tunlinkat: "Tunlinkat", runlinkat: "Runlinkat",
	tversion: "Tversion", rversion: "Rversion",
	tauth: "Tauth", rauth: "Rauth",
	tattach: "Tattach", rattach: "Rattach",
	tflush: "Tflush", rflush: "Rflush",
	twalk: "Twalk", rwalk: "Rwalk",
	tread: "Tread", rread: "Rread",
	twrite: "Twrite", rwrite: "Rwrite",
	tclunk: "Tclunk", rclunk: "Rclunk",
	tremove: "Tremove", rremove: "Rremove",
}

// Lock types for Flock.Type, mirroring fcntl(2)'s F_RDLCK/F_WRLCK/F_UNLCK.
const (
	LockTypeRdlock uint8 = 0
	LockTypeWrlock uint8 = 1
	LockTypeUnlock uint8 = 2
)

// Lock flags for Flock.Flags.
const (
	LockFlagBlock   uint32 = 1
	LockFlagReclaim uint32 = 2
)

// Lock reply status values for Rlock.Status.
const (
	LockStatusSuccess uint8 = 0
	LockStatusBlocked uint8 = 1
	LockStatusError   uint8 = 2
	LockStatusGrace   uint8 = 3
)

// Getattr request/reply validity mask bits.
const (
	GetattrMode        uint64 = 0x00000001
	GetattrNlink       uint64 = 0x00000002
	GetattrUID         uint64 = 0x00000004
	GetattrGID         uint64 = 0x00000008
	GetattrRdev        uint64 = 0x00000010
	GetattrAtime       uint64 = 0x00000020
	GetattrMtime       uint64 = 0x00000040
	GetattrCtime       uint64 = 0x00000080
	GetattrIno         uint64 = 0x00000100
	GetattrSize        uint64 = 0x00000200
	GetattrBlocks      uint64 = 0x00000400
	GetattrBtime       uint64 = 0x00000800
	GetattrGen         uint64 = 0x00001000
	GetattrDataVersion uint64 = 0x00002000

	GetattrBasic uint64 = 0x000007ff // everything up to GetattrBlocks
	GetattrAll   uint64 = 0x00003fff // everything
)

// Setattr validity mask bits.
const (
	SetattrMode     uint32 = 0x00000001
	SetattrUID      uint32 = 0x00000002
	SetattrGID      uint32 = 0x00000004
	SetattrSize     uint32 = 0x00000008
	SetattrAtime    uint32 = 0x00000010
	SetattrMtime    uint32 = 0x00000020
	SetattrCtime    uint32 = 0x00000040
	SetattrAtimeSet uint32 = 0x00000080
	SetattrMtimeSet uint32 = 0x00000100
)
