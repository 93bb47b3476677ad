package styx9p

import (
	"context"
	"syscall"

	"styx9p/errno"
	"styx9p/proto"
)

// Filesystem is the contract a caller of this library implements: one
// method per 9P2000.L request kind, minus Tflush, which the
// dispatcher answers itself with an unconditional Rflush rather than
// a backend callback (see Conn's flush handling).
//
// Every method receives the fid(s) the request names, already
// resolved against the connection's fid table, plus the request's
// remaining scalar and string arguments, and returns the matching
// reply body or an error. A returned error is converted to the wire
// errno reported in Rlerror by errno.From — return an *errno.Error
// directly (via errno.Sys or errno.Io) to control that value
// precisely, or any other error to fall back to its mapped errno.
//
// Embed UnimplementedFilesystem to get EOPNOTSUPP defaults for every
// method you don't need, and the standard Tversion handshake for
// free.
type Filesystem interface {
	Rversion(ctx context.Context, msize uint32, version string) (proto.Rversion, error)
	Rauth(ctx context.Context, afid *Fid, uname, aname string, nUname uint32) (proto.Rauth, error)
	Rattach(ctx context.Context, fid, afid *Fid, uname, aname string, nUname uint32) (proto.Rattach, error)
	Rwalk(ctx context.Context, fid, newfid *Fid, names []string) (proto.Rwalk, error)
	Rread(ctx context.Context, fid *Fid, offset uint64, count uint32) (proto.Rread, error)
	Rwrite(ctx context.Context, fid *Fid, offset uint64, data []byte) (proto.Rwrite, error)
	Rclunk(ctx context.Context, fid *Fid) (proto.Rclunk, error)
	Rremove(ctx context.Context, fid *Fid) (proto.Rremove, error)
	Rstatfs(ctx context.Context, fid *Fid) (proto.Rstatfs, error)
	Rlopen(ctx context.Context, fid *Fid, flags uint32) (proto.Rlopen, error)
	Rlcreate(ctx context.Context, fid *Fid, name string, flags, mode, gid uint32) (proto.Rlcreate, error)
	Rsymlink(ctx context.Context, fid *Fid, name, target string, gid uint32) (proto.Rsymlink, error)
	Rmknod(ctx context.Context, dfid *Fid, name string, mode, major, minor, gid uint32) (proto.Rmknod, error)
	Rrename(ctx context.Context, fid, dfid *Fid, name string) (proto.Rrename, error)
	Rreadlink(ctx context.Context, fid *Fid) (proto.Rreadlink, error)
	Rgetattr(ctx context.Context, fid *Fid, mask uint64) (proto.Rgetattr, error)
	Rsetattr(ctx context.Context, fid *Fid, valid uint32, attr proto.SetAttr) (proto.Rsetattr, error)
	Rxattrwalk(ctx context.Context, fid, newfid *Fid, name string) (proto.Rxattrwalk, error)
	Rxattrcreate(ctx context.Context, fid *Fid, name string, size uint64, flags uint32) (proto.Rxattrcreate, error)
	Rreaddir(ctx context.Context, fid *Fid, offset uint64, count uint32) (proto.Rreaddir, error)
	Rfsync(ctx context.Context, fid *Fid) (proto.Rfsync, error)
	Rlock(ctx context.Context, fid *Fid, lock proto.Flock) (proto.Rlock, error)
	Rgetlock(ctx context.Context, fid *Fid, lock proto.Getlock) (proto.Rgetlock, error)
	Rlink(ctx context.Context, dfid, fid *Fid, name string) (proto.Rlink, error)
	Rmkdir(ctx context.Context, dfid *Fid, name string, mode, gid uint32) (proto.Rmkdir, error)
	Rrenameat(ctx context.Context, olddirfid, newdirfid *Fid, oldname, newname string) (proto.Rrenameat, error)
	Runlinkat(ctx context.Context, dirfid *Fid, name string, flags uint32) (proto.Runlinkat, error)
}

// UnimplementedFilesystem gives every Filesystem method an EOPNOTSUPP
// default, the same pattern gRPC's generated UnimplementedXServer
// types use: embed it, override only the methods your backend
// actually supports.
type UnimplementedFilesystem struct{}

func unsupported() error { return errno.Sys(syscall.EOPNOTSUPP) }

// Rversion accepts the client's msize unconditionally but rejects any
// version string other than 9P2000.L, matching the library's default
// negotiation rule.
func (UnimplementedFilesystem) Rversion(ctx context.Context, msize uint32, version string) (proto.Rversion, error) {
	if version != proto.VersionL {
		return proto.Rversion{}, errno.Sys(syscall.EPROTONOSUPPORT)
	}
	return proto.Rversion{Msize: msize, Version: proto.VersionL}, nil
}

func (UnimplementedFilesystem) Rauth(ctx context.Context, afid *Fid, uname, aname string, nUname uint32) (proto.Rauth, error) {
	return proto.Rauth{}, unsupported()
}

func (UnimplementedFilesystem) Rattach(ctx context.Context, fid, afid *Fid, uname, aname string, nUname uint32) (proto.Rattach, error) {
	return proto.Rattach{}, unsupported()
}

func (UnimplementedFilesystem) Rwalk(ctx context.Context, fid, newfid *Fid, names []string) (proto.Rwalk, error) {
	return proto.Rwalk{}, unsupported()
}

func (UnimplementedFilesystem) Rread(ctx context.Context, fid *Fid, offset uint64, count uint32) (proto.Rread, error) {
	return proto.Rread{}, unsupported()
}

func (UnimplementedFilesystem) Rwrite(ctx context.Context, fid *Fid, offset uint64, data []byte) (proto.Rwrite, error) {
	return proto.Rwrite{}, unsupported()
}

func (UnimplementedFilesystem) Rclunk(ctx context.Context, fid *Fid) (proto.Rclunk, error) {
	return proto.Rclunk{}, unsupported()
}

func (UnimplementedFilesystem) Rremove(ctx context.Context, fid *Fid) (proto.Rremove, error) {
	return proto.Rremove{}, unsupported()
}

func (UnimplementedFilesystem) Rstatfs(ctx context.Context, fid *Fid) (proto.Rstatfs, error) {
	return proto.Rstatfs{}, unsupported()
}

func (UnimplementedFilesystem) Rlopen(ctx context.Context, fid *Fid, flags uint32) (proto.Rlopen, error) {
	return proto.Rlopen{}, unsupported()
}

func (UnimplementedFilesystem) Rlcreate(ctx context.Context, fid *Fid, name string, flags, mode, gid uint32) (proto.Rlcreate, error) {
	return proto.Rlcreate{}, unsupported()
}

func (UnimplementedFilesystem) Rsymlink(ctx context.Context, fid *Fid, name, target string, gid uint32) (proto.Rsymlink, error) {
	return proto.Rsymlink{}, unsupported()
}

func (UnimplementedFilesystem) Rmknod(ctx context.Context, dfid *Fid, name string, mode, major, minor, gid uint32) (proto.Rmknod, error) {
	return proto.Rmknod{}, unsupported()
}

func (UnimplementedFilesystem) Rrename(ctx context.Context, fid, dfid *Fid, name string) (proto.Rrename, error) {
	return proto.Rrename{}, unsupported()
}

func (UnimplementedFilesystem) Rreadlink(ctx context.Context, fid *Fid) (proto.Rreadlink, error) {
	return proto.Rreadlink{}, unsupported()
}

func (UnimplementedFilesystem) Rgetattr(ctx context.Context, fid *Fid, mask uint64) (proto.Rgetattr, error) {
	return proto.Rgetattr{}, unsupported()
}

func (UnimplementedFilesystem) Rsetattr(ctx context.Context, fid *Fid, valid uint32, attr proto.SetAttr) (proto.Rsetattr, error) {
	return proto.Rsetattr{}, unsupported()
}

func (UnimplementedFilesystem) Rxattrwalk(ctx context.Context, fid, newfid *Fid, name string) (proto.Rxattrwalk, error) {
	return proto.Rxattrwalk{}, unsupported()
}

func (UnimplementedFilesystem) Rxattrcreate(ctx context.Context, fid *Fid, name string, size uint64, flags uint32) (proto.Rxattrcreate, error) {
	return proto.Rxattrcreate{}, unsupported()
}

func (UnimplementedFilesystem) Rreaddir(ctx context.Context, fid *Fid, offset uint64, count uint32) (proto.Rreaddir, error) {
	return proto.Rreaddir{}, unsupported()
}

func (UnimplementedFilesystem) Rfsync(ctx context.Context, fid *Fid) (proto.Rfsync, error) {
	return proto.Rfsync{}, unsupported()
}

func (UnimplementedFilesystem) Rlock(ctx context.Context, fid *Fid, lock proto.Flock) (proto.Rlock, error) {
	return proto.Rlock{}, unsupported()
}

func (UnimplementedFilesystem) Rgetlock(ctx context.Context, fid *Fid, lock proto.Getlock) (proto.Rgetlock, error) {
	return proto.Rgetlock{}, unsupported()
}

func (UnimplementedFilesystem) Rlink(ctx context.Context, dfid, fid *Fid, name string) (proto.Rlink, error) {
	return proto.Rlink{}, unsupported()
}

func (UnimplementedFilesystem) Rmkdir(ctx context.Context, dfid *Fid, name string, mode, gid uint32) (proto.Rmkdir, error) {
	return proto.Rmkdir{}, unsupported()
}

func (UnimplementedFilesystem) Rrenameat(ctx context.Context, olddirfid, newdirfid *Fid, oldname, newname string) (proto.Rrenameat, error) {
	return proto.Rrenameat{}, unsupported()
}

func (UnimplementedFilesystem) Runlinkat(ctx context.Context, dirfid *Fid, name string, flags uint32) (proto.Runlinkat, error) {
	return proto.Runlinkat{}, unsupported()
}
