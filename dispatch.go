package styx9p

import (
	"context"
	"syscall"

	"styx9p/errno"
	"styx9p/proto"
)

// errWalkExhausted is synthesized when a backend's Rwalk resolves zero
// of a non-empty name sequence without itself returning an error — a
// backend contract violation the dispatcher still has to turn into
// some wire error rather than silently succeed.
type errWalkExhausted struct{}

func (errWalkExhausted) Error() string { return "walk resolved no path elements" }

// errReply converts any error into the single wire form 9P2000.L
// allows: Rlerror carrying a Linux errno.
func errReply(err error) proto.Rlerror {
	return proto.Rlerror{Ecode: uint32(errno.From(err).Errno())}
}

// dispatch runs exactly one request body to completion and returns its
// reply body. Conn.serve calls this once per request (except Tflush,
// which it answers itself — see Conn.serve) and waits for it to
// return before reading the next frame, so at most one dispatch call
// is ever running per connection.
func (c *Conn) dispatch(ctx context.Context, body proto.Body) proto.Body {
	switch req := body.(type) {

	case proto.Tversion:
		c.fids.reset()
		resp, err := c.fs.Rversion(ctx, req.Msize, req.Version)
		if err != nil {
			return errReply(err)
		}
		if c.opts.msize != 0 && resp.Msize > c.opts.msize {
			resp.Msize = c.opts.msize
		}
		c.setMsize(resp.Msize)
		return resp

	case proto.Tauth:
		afid := c.fids.newFid(req.Afid)
		resp, err := c.fs.Rauth(ctx, afid, req.Uname, req.Aname, req.NUname)
		if err != nil {
			return errReply(err)
		}
		afid.Qid = resp.Aqid
		c.fids.insert(afid)
		return resp

	case proto.Tattach:
		var afid *Fid
		if req.Afid != proto.NOFID {
			var err error
			afid, err = c.fids.take(req.Afid)
			if err != nil {
				return errReply(err)
			}
		}
		fid := c.fids.newFid(req.Fid)
		resp, err := c.fs.Rattach(ctx, fid, afid, req.Uname, req.Aname, req.NUname)
		if afid != nil {
			c.fids.insert(afid)
		}
		if err != nil {
			return errReply(err)
		}
		fid.Qid = resp.Qid
		c.fids.insert(fid)
		return resp

	case proto.Twalk:
		return c.dispatchWalk(ctx, req)

	case proto.Tread:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rread(ctx, f, req.Offset, req.Count)
		})

	case proto.Twrite:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rwrite(ctx, f, req.Offset, req.Data.Bytes)
		})

	case proto.Tclunk:
		return c.withFidDrop(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rclunk(ctx, f)
		})

	case proto.Tremove:
		return c.withFidDrop(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rremove(ctx, f)
		})

	case proto.Tstatfs:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rstatfs(ctx, f)
		})

	case proto.Tlopen:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			resp, err := c.fs.Rlopen(ctx, f, req.Flags)
			if err == nil {
				f.Qid = resp.Qid
			}
			return resp, err
		})

	case proto.Tlcreate:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			resp, err := c.fs.Rlcreate(ctx, f, req.Name, req.Flags, req.Mode, req.Gid)
			if err == nil {
				f.Qid = resp.Qid
			}
			return resp, err
		})

	case proto.Tsymlink:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rsymlink(ctx, f, req.Name, req.Symtgt, req.Gid)
		})

	case proto.Tmknod:
		return c.withFid(req.Dfid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rmknod(ctx, f, req.Name, req.Mode, req.Major, req.Minor, req.Gid)
		})

	case proto.Trename:
		return c.withFids(req.Fid, req.Dfid, func(fid, dfid *Fid) (proto.Body, error) {
			return c.fs.Rrename(ctx, fid, dfid, req.Name)
		})

	case proto.Treadlink:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rreadlink(ctx, f)
		})

	case proto.Tgetattr:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rgetattr(ctx, f, req.ReqMask)
		})

	case proto.Tsetattr:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rsetattr(ctx, f, req.Valid, req.Stat)
		})

	case proto.Txattrwalk:
		return c.dispatchXattrwalk(ctx, req)

	case proto.Txattrcreate:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rxattrcreate(ctx, f, req.Name, req.AttrSize, req.Flags)
		})

	case proto.Treaddir:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rreaddir(ctx, f, req.Offset, req.Count)
		})

	case proto.Tfsync:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rfsync(ctx, f)
		})

	case proto.Tlock:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rlock(ctx, f, req.Flock)
		})

	case proto.Tgetlock:
		return c.withFid(req.Fid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rgetlock(ctx, f, req.Getlock)
		})

	case proto.Tlink:
		return c.withFids(req.Dfid, req.Fid, func(dfid, fid *Fid) (proto.Body, error) {
			return c.fs.Rlink(ctx, dfid, fid, req.Name)
		})

	case proto.Tmkdir:
		return c.withFid(req.Dfid, func(f *Fid) (proto.Body, error) {
			return c.fs.Rmkdir(ctx, f, req.Name, req.Mode, req.Gid)
		})

	case proto.Trenameat:
		return c.withFids(req.Olddirfid, req.Newdirfid, func(olddirfid, newdirfid *Fid) (proto.Body, error) {
			return c.fs.Rrenameat(ctx, olddirfid, newdirfid, req.Oldname, req.Newname)
		})

	case proto.Tunlinkat:
		return c.withFid(req.Dirfd, func(f *Fid) (proto.Body, error) {
			return c.fs.Runlinkat(ctx, f, req.Name, req.Flags)
		})

	default:
		// A well-formed request type with no dispatch case: either a
		// reply type sent where a request belongs, or a kind this
		// switch has no backend hook for yet.
		return errReply(errno.Sys(syscall.ENOSYS))
	}
}

// withFid takes a single existing fid, runs fn, and reinserts it
// whether fn succeeds or fails — only Tclunk and Tremove ever drop a
// fid on success, handled by withFidDrop instead.
func (c *Conn) withFid(num uint32, fn func(*Fid) (proto.Body, error)) proto.Body {
	f, err := c.fids.take(num)
	if err != nil {
		return errReply(err)
	}
	resp, err := fn(f)
	c.fids.insert(f)
	if err != nil {
		return errReply(err)
	}
	return resp
}

// withFidDrop is withFid for Tclunk/Tremove: on success the fid is
// not reinserted, matching the 9P2000.L clunk-on-success rule for
// both operations.
func (c *Conn) withFidDrop(num uint32, fn func(*Fid) (proto.Body, error)) proto.Body {
	f, err := c.fids.take(num)
	if err != nil {
		return errReply(err)
	}
	resp, err := fn(f)
	if err != nil {
		c.fids.insert(f)
		return errReply(err)
	}
	return resp
}

// withFids takes two existing fids (order preserved) and reinserts
// both regardless of outcome.
func (c *Conn) withFids(a, b uint32, fn func(fa, fb *Fid) (proto.Body, error)) proto.Body {
	taken, err := c.fids.takeMany(a, b)
	if err != nil {
		c.fids.insertAll(taken)
		return errReply(err)
	}
	resp, err := fn(taken[0], taken[1])
	c.fids.insertAll(taken)
	if err != nil {
		return errReply(err)
	}
	return resp
}

func (c *Conn) dispatchXattrwalk(ctx context.Context, req proto.Txattrwalk) proto.Body {
	fid, err := c.fids.take(req.Fid)
	if err != nil {
		return errReply(err)
	}
	newfid := c.fids.newFid(req.Newfid)
	resp, err := c.fs.Rxattrwalk(ctx, fid, newfid, req.Name)
	c.fids.insert(fid)
	if err != nil {
		return errReply(err)
	}
	c.fids.insert(newfid)
	return resp
}

// dispatchWalk implements Twalk's two irregular cases: an empty
// wname sequence clones fid into newfid (the backend still sees a
// normal Rwalk call, returning an empty Wqid), and newfid == fid
// replaces the fid in place rather than allocating a second entry.
func (c *Conn) dispatchWalk(ctx context.Context, req proto.Twalk) proto.Body {
	fid, err := c.fids.take(req.Fid)
	if err != nil {
		return errReply(err)
	}

	sameFid := req.Newfid == req.Fid
	var newfid *Fid
	switch {
	case sameFid:
		newfid = fid
	case len(req.Wname) == 0:
		newfid = &Fid{Num: req.Newfid, Qid: fid.Qid, Aux: fid.Aux}
	default:
		newfid = c.fids.newFid(req.Newfid)
	}

	resp, err := c.fs.Rwalk(ctx, fid, newfid, req.Wname)
	if err == nil && len(req.Wname) > 0 && len(resp.Wqid) == 0 {
		err = errWalkExhausted{}
	}
	if err != nil {
		c.fids.insert(fid)
		return errReply(err)
	}

	if n := len(resp.Wqid); n > 0 {
		newfid.Qid = resp.Wqid[n-1]
	}
	if sameFid {
		c.fids.insert(newfid)
	} else {
		c.fids.insert(fid)
		c.fids.insert(newfid)
	}
	return resp
}
