package proto

// Time is a POSIX timestamp split into seconds and nanoseconds, used
// for the atime/mtime/ctime fields of Stat and SetAttr.
type Time struct {
	Sec  uint64
	Nsec uint64
}

func (t Time) encode(w *writer) {
	w.u64(t.Sec)
	w.u64(t.Nsec)
}

func (t *Time) decode(r *reader) {
	t.Sec = r.u64()
	t.Nsec = r.u64()
}

// Stat mirrors the fields of a POSIX stat(2) struct that 9P2000.L
// exposes, as carried in an Rgetattr reply and a directory's DirEntry.
type Stat struct {
	Mode    uint32
	UID     uint32
	GID     uint32
	Nlink   uint64
	Rdev    uint64
	Size    uint64
	Blksize uint64
	Blocks  uint64
	Atime   Time
	Mtime   Time
	Ctime   Time
}

func (s Stat) encode(w *writer) {
	w.u32(s.Mode)
	w.u32(s.UID)
	w.u32(s.GID)
	w.u64(s.Nlink)
	w.u64(s.Rdev)
	w.u64(s.Size)
	w.u64(s.Blksize)
	w.u64(s.Blocks)
	w.time(s.Atime)
	w.time(s.Mtime)
	w.time(s.Ctime)
}

func (s *Stat) decode(r *reader) {
	s.Mode = r.u32()
	s.UID = r.u32()
	s.GID = r.u32()
	s.Nlink = r.u64()
	s.Rdev = r.u64()
	s.Size = r.u64()
	s.Blksize = r.u64()
	s.Blocks = r.u64()
	s.Atime.decode(r)
	s.Mtime.decode(r)
	s.Ctime.decode(r)
}

// SetAttr carries the fields a Tsetattr request may change; Valid in
// the enclosing Tsetattr selects which of them apply. See
// SetattrAtime/SetattrAtimeSet and friends.
type SetAttr struct {
	Mode  uint32
	UID   uint32
	GID   uint32
	Size  uint64
	Atime Time
	Mtime Time
}

func (s SetAttr) encode(w *writer) {
	w.u32(s.Mode)
	w.u32(s.UID)
	w.u32(s.GID)
	w.u64(s.Size)
	w.time(s.Atime)
	w.time(s.Mtime)
}

func (s *SetAttr) decode(r *reader) {
	s.Mode = r.u32()
	s.UID = r.u32()
	s.GID = r.u32()
	s.Size = r.u64()
	s.Atime.decode(r)
	s.Mtime.decode(r)
}

// Statfs mirrors the fields returned by statfs(2).
type Statfs struct {
	Type    uint32
	Bsize   uint32
	Blocks  uint64
	Bfree   uint64
	Bavail  uint64
	Files   uint64
	Ffree   uint64
	Fsid    uint64
	Namelen uint32
}

func (s Statfs) encode(w *writer) {
	w.u32(s.Type)
	w.u32(s.Bsize)
	w.u64(s.Blocks)
	w.u64(s.Bfree)
	w.u64(s.Bavail)
	w.u64(s.Files)
	w.u64(s.Ffree)
	w.u64(s.Fsid)
	w.u32(s.Namelen)
}

func (s *Statfs) decode(r *reader) {
	s.Type = r.u32()
	s.Bsize = r.u32()
	s.Blocks = r.u64()
	s.Bfree = r.u64()
	s.Bavail = r.u64()
	s.Files = r.u64()
	s.Ffree = r.u64()
	s.Fsid = r.u64()
	s.Namelen = r.u32()
}

// DirEntry is a single entry as returned in an Rreaddir reply; Offset
// is the value a client should pass as the next Treaddir's offset to
// resume immediately after this entry.
type DirEntry struct {
	Qid    Qid
	Offset uint64
	Type   uint8
	Name   string
}

// EncodedLen returns the number of bytes this entry occupies on the
// wire: callers building an Rreaddir reply use it to stay within a
// client's requested count.
func (d DirEntry) EncodedLen() int {
	return QidLen + 8 + 1 + 2 + len(d.Name)
}

func (d DirEntry) encode(w *writer) {
	w.qid(d.Qid)
	w.u64(d.Offset)
	w.u8(d.Type)
	w.str(d.Name)
}

func (d *DirEntry) decode(r *reader) {
	d.Qid.decode(r)
	d.Offset = r.u64()
	d.Type = r.u8()
	d.Name = r.str()
}

// DirEntryData is the body of an Rreaddir reply: a sequence of entries
// prefixed by a 4-byte count.
type DirEntryData struct {
	Entries []DirEntry
}

// Fit truncates d to the longest prefix whose cumulative EncodedLen
// does not exceed count, the budget from the originating Treaddir.
func (d DirEntryData) Fit(count int) DirEntryData {
	used := 0
	for i, e := range d.Entries {
		n := e.EncodedLen()
		if used+n > count {
			return DirEntryData{Entries: d.Entries[:i]}
		}
		used += n
	}
	return d
}

func (d DirEntryData) encode(w *writer) {
	w.u32(uint32(len(d.Entries)))
	for _, e := range d.Entries {
		e.encode(w)
	}
}

func (d *DirEntryData) decode(r *reader) {
	n := int(r.u32())
	d.Entries = make([]DirEntry, n)
	for i := range d.Entries {
		d.Entries[i].decode(r)
	}
}

// Data is an opaque byte payload, used by Twrite and Rread.
type Data struct {
	Bytes []byte
}

func (d Data) encode(w *writer) {
	w.u32(uint32(len(d.Bytes)))
	w.raw(d.Bytes)
}

func (d *Data) decode(r *reader) {
	n := int(r.u32())
	d.Bytes = r.raw(n)
}

// Flock describes a POSIX record lock request, as carried by Tlock.
type Flock struct {
	Type     uint8
	Flags    uint32
	Start    uint64
	Length   uint64
	ProcID   uint32
	ClientID string
}

func (f Flock) encode(w *writer) {
	w.u8(f.Type)
	w.u32(f.Flags)
	w.u64(f.Start)
	w.u64(f.Length)
	w.u32(f.ProcID)
	w.str(f.ClientID)
}

func (f *Flock) decode(r *reader) {
	f.Type = r.u8()
	f.Flags = r.u32()
	f.Start = r.u64()
	f.Length = r.u64()
	f.ProcID = r.u32()
	f.ClientID = r.str()
}

// Getlock describes a POSIX record lock query, as carried by Tgetlock
// and its reply.
type Getlock struct {
	Type     uint8
	Start    uint64
	Length   uint64
	ProcID   uint32
	ClientID string
}

func (g Getlock) encode(w *writer) {
	w.u8(g.Type)
	w.u64(g.Start)
	w.u64(g.Length)
	w.u32(g.ProcID)
	w.str(g.ClientID)
}

func (g *Getlock) decode(r *reader) {
	g.Type = r.u8()
	g.Start = r.u64()
	g.Length = r.u64()
	g.ProcID = r.u32()
	g.ClientID = r.str()
}
