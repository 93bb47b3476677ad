package styx9p

import (
	"context"
	"sync"

	"styx9p/proto"
)

// mutexFilesystem shares a single Filesystem across every connection
// accepted in ModeThread, serializing every callback behind one mutex
// — SPEC_FULL.md §5's coarse-but-simple thread-mode sharing model. A
// backend wanting intra-process parallelism needs its own
// per-connection state and finer-grained locking; this library does
// not provide it, matching the Open Question's resolution in
// DESIGN.md.
type mutexFilesystem struct {
	mu sync.Mutex
	fs Filesystem
}

func (m *mutexFilesystem) Rversion(ctx context.Context, msize uint32, version string) (proto.Rversion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rversion(ctx, msize, version)
}

func (m *mutexFilesystem) Rauth(ctx context.Context, afid *Fid, uname, aname string, nUname uint32) (proto.Rauth, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rauth(ctx, afid, uname, aname, nUname)
}

func (m *mutexFilesystem) Rattach(ctx context.Context, fid, afid *Fid, uname, aname string, nUname uint32) (proto.Rattach, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rattach(ctx, fid, afid, uname, aname, nUname)
}

func (m *mutexFilesystem) Rwalk(ctx context.Context, fid, newfid *Fid, names []string) (proto.Rwalk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rwalk(ctx, fid, newfid, names)
}

func (m *mutexFilesystem) Rread(ctx context.Context, fid *Fid, offset uint64, count uint32) (proto.Rread, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rread(ctx, fid, offset, count)
}

func (m *mutexFilesystem) Rwrite(ctx context.Context, fid *Fid, offset uint64, data []byte) (proto.Rwrite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rwrite(ctx, fid, offset, data)
}

func (m *mutexFilesystem) Rclunk(ctx context.Context, fid *Fid) (proto.Rclunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rclunk(ctx, fid)
}

func (m *mutexFilesystem) Rremove(ctx context.Context, fid *Fid) (proto.Rremove, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rremove(ctx, fid)
}

func (m *mutexFilesystem) Rstatfs(ctx context.Context, fid *Fid) (proto.Rstatfs, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rstatfs(ctx, fid)
}

func (m *mutexFilesystem) Rlopen(ctx context.Context, fid *Fid, flags uint32) (proto.Rlopen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rlopen(ctx, fid, flags)
}

func (m *mutexFilesystem) Rlcreate(ctx context.Context, fid *Fid, name string, flags, mode, gid uint32) (proto.Rlcreate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rlcreate(ctx, fid, name, flags, mode, gid)
}

func (m *mutexFilesystem) Rsymlink(ctx context.Context, fid *Fid, name, target string, gid uint32) (proto.Rsymlink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rsymlink(ctx, fid, name, target, gid)
}

func (m *mutexFilesystem) Rmknod(ctx context.Context, dfid *Fid, name string, mode, major, minor, gid uint32) (proto.Rmknod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rmknod(ctx, dfid, name, mode, major, minor, gid)
}

func (m *mutexFilesystem) Rrename(ctx context.Context, fid, dfid *Fid, name string) (proto.Rrename, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rrename(ctx, fid, dfid, name)
}

func (m *mutexFilesystem) Rreadlink(ctx context.Context, fid *Fid) (proto.Rreadlink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rreadlink(ctx, fid)
}

func (m *mutexFilesystem) Rgetattr(ctx context.Context, fid *Fid, mask uint64) (proto.Rgetattr, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rgetattr(ctx, fid, mask)
}

func (m *mutexFilesystem) Rsetattr(ctx context.Context, fid *Fid, valid uint32, attr proto.SetAttr) (proto.Rsetattr, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rsetattr(ctx, fid, valid, attr)
}

func (m *mutexFilesystem) Rxattrwalk(ctx context.Context, fid, newfid *Fid, name string) (proto.Rxattrwalk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rxattrwalk(ctx, fid, newfid, name)
}

func (m *mutexFilesystem) Rxattrcreate(ctx context.Context, fid *Fid, name string, size uint64, flags uint32) (proto.Rxattrcreate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rxattrcreate(ctx, fid, name, size, flags)
}

func (m *mutexFilesystem) Rreaddir(ctx context.Context, fid *Fid, offset uint64, count uint32) (proto.Rreaddir, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rreaddir(ctx, fid, offset, count)
}

func (m *mutexFilesystem) Rfsync(ctx context.Context, fid *Fid) (proto.Rfsync, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rfsync(ctx, fid)
}

func (m *mutexFilesystem) Rlock(ctx context.Context, fid *Fid, lock proto.Flock) (proto.Rlock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rlock(ctx, fid, lock)
}

func (m *mutexFilesystem) Rgetlock(ctx context.Context, fid *Fid, lock proto.Getlock) (proto.Rgetlock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rgetlock(ctx, fid, lock)
}

func (m *mutexFilesystem) Rlink(ctx context.Context, dfid, fid *Fid, name string) (proto.Rlink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rlink(ctx, dfid, fid, name)
}

func (m *mutexFilesystem) Rmkdir(ctx context.Context, dfid *Fid, name string, mode, gid uint32) (proto.Rmkdir, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rmkdir(ctx, dfid, name, mode, gid)
}

func (m *mutexFilesystem) Rrenameat(ctx context.Context, olddirfid, newdirfid *Fid, oldname, newname string) (proto.Rrenameat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Rrenameat(ctx, olddirfid, newdirfid, oldname, newname)
}

func (m *mutexFilesystem) Runlinkat(ctx context.Context, dirfid *Fid, name string, flags uint32) (proto.Runlinkat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fs.Runlinkat(ctx, dirfid, name, flags)
}
