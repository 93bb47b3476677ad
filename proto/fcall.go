package proto

// Body is implemented by every request and response struct in this
// package, and by nothing else: the encode method is unexported, so
// the set of types satisfying Body is closed to this package, mirroring
// the closed 9P2000.L message enumeration.
type Body interface {
	MsgType() MsgType
	encode(w *writer)
}

// Msg is a single 9P2000.L message: a tag matching a reply to its
// request, and a body whose concrete type determines the wire MsgType.
type Msg struct {
	Tag  uint16
	Body Body
}

// -- session setup, teardown, navigation --

type Tversion struct {
	Msize   uint32
	Version string
}

func (Tversion) MsgType() MsgType { return tversion }
func (m Tversion) encode(w *writer) {
	w.u32(m.Msize)
	w.str(m.Version)
}
func decodeTversion(r *reader) Tversion {
	var m Tversion
	m.Msize = r.u32()
	m.Version = r.str()
	return m
}

type Rversion struct {
	Msize   uint32
	Version string
}

func (Rversion) MsgType() MsgType { return rversion }
func (m Rversion) encode(w *writer) {
	w.u32(m.Msize)
	w.str(m.Version)
}
func decodeRversion(r *reader) Rversion {
	var m Rversion
	m.Msize = r.u32()
	m.Version = r.str()
	return m
}

type Tauth struct {
	Afid   uint32
	Uname  string
	Aname  string
	NUname uint32
}

func (Tauth) MsgType() MsgType { return tauth }
func (m Tauth) encode(w *writer) {
	w.u32(m.Afid)
	w.str(m.Uname)
	w.str(m.Aname)
	w.u32(m.NUname)
}
func decodeTauth(r *reader) Tauth {
	var m Tauth
	m.Afid = r.u32()
	m.Uname = r.str()
	m.Aname = r.str()
	m.NUname = r.u32()
	return m
}

type Rauth struct {
	Aqid Qid
}

func (Rauth) MsgType() MsgType { return rauth }
func (m Rauth) encode(w *writer) { w.qid(m.Aqid) }
func decodeRauth(r *reader) Rauth {
	var m Rauth
	m.Aqid = r.qid()
	return m
}

type Tattach struct {
	Fid    uint32
	Afid   uint32
	Uname  string
	Aname  string
	NUname uint32
}

func (Tattach) MsgType() MsgType { return tattach }
func (m Tattach) encode(w *writer) {
	w.u32(m.Fid)
	w.u32(m.Afid)
	w.str(m.Uname)
	w.str(m.Aname)
	w.u32(m.NUname)
}
func decodeTattach(r *reader) Tattach {
	var m Tattach
	m.Fid = r.u32()
	m.Afid = r.u32()
	m.Uname = r.str()
	m.Aname = r.str()
	m.NUname = r.u32()
	return m
}

type Rattach struct {
	Qid Qid
}

func (Rattach) MsgType() MsgType { return rattach }
func (m Rattach) encode(w *writer) { w.qid(m.Qid) }
func decodeRattach(r *reader) Rattach {
	var m Rattach
	m.Qid = r.qid()
	return m
}

// Rlerror is the universal failure reply: 9P2000.L never sends the
// legacy Rerror{Ename string} form.
type Rlerror struct {
	Ecode uint32
}

func (Rlerror) MsgType() MsgType { return rlerror }
func (m Rlerror) encode(w *writer) { w.u32(m.Ecode) }
func decodeRlerror(r *reader) Rlerror {
	var m Rlerror
	m.Ecode = r.u32()
	return m
}

type Tflush struct {
	Oldtag uint16
}

func (Tflush) MsgType() MsgType { return tflush }
func (m Tflush) encode(w *writer) { w.u16(m.Oldtag) }
func decodeTflush(r *reader) Tflush {
	var m Tflush
	m.Oldtag = r.u16()
	return m
}

type Rflush struct{}

func (Rflush) MsgType() MsgType    { return rflush }
func (Rflush) encode(w *writer)    {}
func decodeRflush(r *reader) Rflush { return Rflush{} }

type Twalk struct {
	Fid    uint32
	Newfid uint32
	Wname  []string
}

func (Twalk) MsgType() MsgType { return twalk }
func (m Twalk) encode(w *writer) {
	w.u32(m.Fid)
	w.u32(m.Newfid)
	w.u16(uint16(len(m.Wname)))
	for _, s := range m.Wname {
		w.str(s)
	}
}
func decodeTwalk(r *reader) Twalk {
	var m Twalk
	m.Fid = r.u32()
	m.Newfid = r.u32()
	m.Wname = r.strvec()
	return m
}

type Rwalk struct {
	Wqid []Qid
}

func (Rwalk) MsgType() MsgType { return rwalk }
func (m Rwalk) encode(w *writer) {
	w.u16(uint16(len(m.Wqid)))
	for _, q := range m.Wqid {
		w.qid(q)
	}
}
func decodeRwalk(r *reader) Rwalk {
	var m Rwalk
	m.Wqid = r.qidvec()
	return m
}

type Tread struct {
	Fid    uint32
	Offset uint64
	Count  uint32
}

func (Tread) MsgType() MsgType { return tread }
func (m Tread) encode(w *writer) {
	w.u32(m.Fid)
	w.u64(m.Offset)
	w.u32(m.Count)
}
func decodeTread(r *reader) Tread {
	var m Tread
	m.Fid = r.u32()
	m.Offset = r.u64()
	m.Count = r.u32()
	return m
}

type Rread struct {
	Data Data
}

func (Rread) MsgType() MsgType { return rread }
func (m Rread) encode(w *writer) { m.Data.encode(w) }
func decodeRread(r *reader) Rread {
	var m Rread
	m.Data.decode(r)
	return m
}

type Twrite struct {
	Fid    uint32
	Offset uint64
	Data   Data
}

func (Twrite) MsgType() MsgType { return twrite }
func (m Twrite) encode(w *writer) {
	w.u32(m.Fid)
	w.u64(m.Offset)
	m.Data.encode(w)
}
func decodeTwrite(r *reader) Twrite {
	var m Twrite
	m.Fid = r.u32()
	m.Offset = r.u64()
	m.Data.decode(r)
	return m
}

type Rwrite struct {
	Count uint32
}

func (Rwrite) MsgType() MsgType { return rwrite }
func (m Rwrite) encode(w *writer) { w.u32(m.Count) }
func decodeRwrite(r *reader) Rwrite {
	var m Rwrite
	m.Count = r.u32()
	return m
}

type Tclunk struct {
	Fid uint32
}

func (Tclunk) MsgType() MsgType { return tclunk }
func (m Tclunk) encode(w *writer) { w.u32(m.Fid) }
func decodeTclunk(r *reader) Tclunk {
	var m Tclunk
	m.Fid = r.u32()
	return m
}

type Rclunk struct{}

func (Rclunk) MsgType() MsgType    { return rclunk }
func (Rclunk) encode(w *writer)    {}
func decodeRclunk(r *reader) Rclunk { return Rclunk{} }

type Tremove struct {
	Fid uint32
}

func (Tremove) MsgType() MsgType { return tremove }
func (m Tremove) encode(w *writer) { w.u32(m.Fid) }
func decodeTremove(r *reader) Tremove {
	var m Tremove
	m.Fid = r.u32()
	return m
}

type Rremove struct{}

func (Rremove) MsgType() MsgType     { return rremove }
func (Rremove) encode(w *writer)     {}
func decodeRremove(r *reader) Rremove { return Rremove{} }

// -- 9P2000.L extensions --

type Tstatfs struct {
	Fid uint32
}

func (Tstatfs) MsgType() MsgType { return tstatfs }
func (m Tstatfs) encode(w *writer) { w.u32(m.Fid) }
func decodeTstatfs(r *reader) Tstatfs {
	var m Tstatfs
	m.Fid = r.u32()
	return m
}

type Rstatfs struct {
	Statfs Statfs
}

func (Rstatfs) MsgType() MsgType { return rstatfs }
func (m Rstatfs) encode(w *writer) { m.Statfs.encode(w) }
func decodeRstatfs(r *reader) Rstatfs {
	var m Rstatfs
	m.Statfs.decode(r)
	return m
}

type Tlopen struct {
	Fid   uint32
	Flags uint32
}

func (Tlopen) MsgType() MsgType { return tlopen }
func (m Tlopen) encode(w *writer) {
	w.u32(m.Fid)
	w.u32(m.Flags)
}
func decodeTlopen(r *reader) Tlopen {
	var m Tlopen
	m.Fid = r.u32()
	m.Flags = r.u32()
	return m
}

type Rlopen struct {
	Qid    Qid
	Iounit uint32
}

func (Rlopen) MsgType() MsgType { return rlopen }
func (m Rlopen) encode(w *writer) {
	w.qid(m.Qid)
	w.u32(m.Iounit)
}
func decodeRlopen(r *reader) Rlopen {
	var m Rlopen
	m.Qid = r.qid()
	m.Iounit = r.u32()
	return m
}

type Tlcreate struct {
	Fid   uint32
	Name  string
	Flags uint32
	Mode  uint32
	Gid   uint32
}

func (Tlcreate) MsgType() MsgType { return tlcreate }
func (m Tlcreate) encode(w *writer) {
	w.u32(m.Fid)
	w.str(m.Name)
	w.u32(m.Flags)
	w.u32(m.Mode)
	w.u32(m.Gid)
}
func decodeTlcreate(r *reader) Tlcreate {
	var m Tlcreate
	m.Fid = r.u32()
	m.Name = r.str()
	m.Flags = r.u32()
	m.Mode = r.u32()
	m.Gid = r.u32()
	return m
}

type Rlcreate struct {
	Qid    Qid
	Iounit uint32
}

func (Rlcreate) MsgType() MsgType { return rlcreate }
func (m Rlcreate) encode(w *writer) {
	w.qid(m.Qid)
	w.u32(m.Iounit)
}
func decodeRlcreate(r *reader) Rlcreate {
	var m Rlcreate
	m.Qid = r.qid()
	m.Iounit = r.u32()
	return m
}

type Tsymlink struct {
	Fid     uint32
	Name    string
	Symtgt  string
	Gid     uint32
}

func (Tsymlink) MsgType() MsgType { return tsymlink }
func (m Tsymlink) encode(w *writer) {
	w.u32(m.Fid)
	w.str(m.Name)
	w.str(m.Symtgt)
	w.u32(m.Gid)
}
func decodeTsymlink(r *reader) Tsymlink {
	var m Tsymlink
	m.Fid = r.u32()
	m.Name = r.str()
	m.Symtgt = r.str()
	m.Gid = r.u32()
	return m
}

type Rsymlink struct {
	Qid Qid
}

func (Rsymlink) MsgType() MsgType { return rsymlink }
func (m Rsymlink) encode(w *writer) { w.qid(m.Qid) }
func decodeRsymlink(r *reader) Rsymlink {
	var m Rsymlink
	m.Qid = r.qid()
	return m
}

type Tmknod struct {
	Dfid  uint32
	Name  string
	Mode  uint32
	Major uint32
	Minor uint32
	Gid   uint32
}

func (Tmknod) MsgType() MsgType { return tmknod }
func (m Tmknod) encode(w *writer) {
	w.u32(m.Dfid)
	w.str(m.Name)
	w.u32(m.Mode)
	w.u32(m.Major)
	w.u32(m.Minor)
	w.u32(m.Gid)
}
func decodeTmknod(r *reader) Tmknod {
	var m Tmknod
	m.Dfid = r.u32()
	m.Name = r.str()
	m.Mode = r.u32()
	m.Major = r.u32()
	m.Minor = r.u32()
	m.Gid = r.u32()
	return m
}

type Rmknod struct {
	Qid Qid
}

func (Rmknod) MsgType() MsgType { return rmknod }
func (m Rmknod) encode(w *writer) { w.qid(m.Qid) }
func decodeRmknod(r *reader) Rmknod {
	var m Rmknod
	m.Qid = r.qid()
	return m
}

type Trename struct {
	Fid  uint32
	Dfid uint32
	Name string
}

func (Trename) MsgType() MsgType { return trename }
func (m Trename) encode(w *writer) {
	w.u32(m.Fid)
	w.u32(m.Dfid)
	w.str(m.Name)
}
func decodeTrename(r *reader) Trename {
	var m Trename
	m.Fid = r.u32()
	m.Dfid = r.u32()
	m.Name = r.str()
	return m
}

type Rrename struct{}

func (Rrename) MsgType() MsgType     { return rrename }
func (Rrename) encode(w *writer)     {}
func decodeRrename(r *reader) Rrename { return Rrename{} }

type Treadlink struct {
	Fid uint32
}

func (Treadlink) MsgType() MsgType { return treadlink }
func (m Treadlink) encode(w *writer) { w.u32(m.Fid) }
func decodeTreadlink(r *reader) Treadlink {
	var m Treadlink
	m.Fid = r.u32()
	return m
}

type Rreadlink struct {
	Target string
}

func (Rreadlink) MsgType() MsgType { return rreadlink }
func (m Rreadlink) encode(w *writer) { w.str(m.Target) }
func decodeRreadlink(r *reader) Rreadlink {
	var m Rreadlink
	m.Target = r.str()
	return m
}

type Tgetattr struct {
	Fid     uint32
	ReqMask uint64
}

func (Tgetattr) MsgType() MsgType { return tgetattr }
func (m Tgetattr) encode(w *writer) {
	w.u32(m.Fid)
	w.u64(m.ReqMask)
}
func decodeTgetattr(r *reader) Tgetattr {
	var m Tgetattr
	m.Fid = r.u32()
	m.ReqMask = r.u64()
	return m
}

// Rgetattr's wire form keeps four reserved u64 fields (btime.sec,
// btime.nsec, gen, data_version) at the end, always written as zero;
// they are not exposed as Go fields since 9P2000.L never populates
// them in practice, but the encoder still emits them and the decoder
// still consumes them so the frame length matches the protocol.
type Rgetattr struct {
	Valid uint64
	Qid   Qid
	Stat  Stat
}

func (Rgetattr) MsgType() MsgType { return rgetattr }
func (m Rgetattr) encode(w *writer) {
	w.u64(m.Valid)
	w.qid(m.Qid)
	m.Stat.encode(w)
	w.u64(0) // btime.sec
	w.u64(0) // btime.nsec
	w.u64(0) // gen
	w.u64(0) // data_version
}
func decodeRgetattr(r *reader) Rgetattr {
	var m Rgetattr
	m.Valid = r.u64()
	m.Qid = r.qid()
	m.Stat.decode(r)
	r.u64()
	r.u64()
	r.u64()
	r.u64()
	return m
}

type Tsetattr struct {
	Fid   uint32
	Valid uint32
	Stat  SetAttr
}

func (Tsetattr) MsgType() MsgType { return tsetattr }
func (m Tsetattr) encode(w *writer) {
	w.u32(m.Fid)
	w.u32(m.Valid)
	m.Stat.encode(w)
}
func decodeTsetattr(r *reader) Tsetattr {
	var m Tsetattr
	m.Fid = r.u32()
	m.Valid = r.u32()
	m.Stat.decode(r)
	return m
}

type Rsetattr struct{}

func (Rsetattr) MsgType() MsgType      { return rsetattr }
func (Rsetattr) encode(w *writer)      {}
func decodeRsetattr(r *reader) Rsetattr { return Rsetattr{} }

type Txattrwalk struct {
	Fid    uint32
	Newfid uint32
	Name   string
}

func (Txattrwalk) MsgType() MsgType { return txattrwalk }
func (m Txattrwalk) encode(w *writer) {
	w.u32(m.Fid)
	w.u32(m.Newfid)
	w.str(m.Name)
}
func decodeTxattrwalk(r *reader) Txattrwalk {
	var m Txattrwalk
	m.Fid = r.u32()
	m.Newfid = r.u32()
	m.Name = r.str()
	return m
}

type Rxattrwalk struct {
	Size uint64
}

func (Rxattrwalk) MsgType() MsgType { return rxattrwalk }
func (m Rxattrwalk) encode(w *writer) { w.u64(m.Size) }
func decodeRxattrwalk(r *reader) Rxattrwalk {
	var m Rxattrwalk
	m.Size = r.u64()
	return m
}

type Txattrcreate struct {
	Fid      uint32
	Name     string
	AttrSize uint64
	Flags    uint32
}

func (Txattrcreate) MsgType() MsgType { return txattrcreate }
func (m Txattrcreate) encode(w *writer) {
	w.u32(m.Fid)
	w.str(m.Name)
	w.u64(m.AttrSize)
	w.u32(m.Flags)
}
func decodeTxattrcreate(r *reader) Txattrcreate {
	var m Txattrcreate
	m.Fid = r.u32()
	m.Name = r.str()
	m.AttrSize = r.u64()
	m.Flags = r.u32()
	return m
}

type Rxattrcreate struct{}

func (Rxattrcreate) MsgType() MsgType        { return rxattrcreate }
func (Rxattrcreate) encode(w *writer)        {}
func decodeRxattrcreate(r *reader) Rxattrcreate { return Rxattrcreate{} }

type Treaddir struct {
	Fid    uint32
	Offset uint64
	Count  uint32
}

func (Treaddir) MsgType() MsgType { return treaddir }
func (m Treaddir) encode(w *writer) {
	w.u32(m.Fid)
	w.u64(m.Offset)
	w.u32(m.Count)
}
func decodeTreaddir(r *reader) Treaddir {
	var m Treaddir
	m.Fid = r.u32()
	m.Offset = r.u64()
	m.Count = r.u32()
	return m
}

type Rreaddir struct {
	Data DirEntryData
}

func (Rreaddir) MsgType() MsgType { return rreaddir }
func (m Rreaddir) encode(w *writer) { m.Data.encode(w) }
func decodeRreaddir(r *reader) Rreaddir {
	var m Rreaddir
	m.Data.decode(r)
	return m
}

type Tfsync struct {
	Fid uint32
}

func (Tfsync) MsgType() MsgType { return tfsync }
func (m Tfsync) encode(w *writer) { w.u32(m.Fid) }
func decodeTfsync(r *reader) Tfsync {
	var m Tfsync
	m.Fid = r.u32()
	return m
}

type Rfsync struct{}

func (Rfsync) MsgType() MsgType    { return rfsync }
func (Rfsync) encode(w *writer)    {}
func decodeRfsync(r *reader) Rfsync { return Rfsync{} }

type Tlock struct {
	Fid   uint32
	Flock Flock
}

func (Tlock) MsgType() MsgType { return tlock }
func (m Tlock) encode(w *writer) {
	w.u32(m.Fid)
	m.Flock.encode(w)
}
func decodeTlock(r *reader) Tlock {
	var m Tlock
	m.Fid = r.u32()
	m.Flock.decode(r)
	return m
}

type Rlock struct {
	Status uint8
}

func (Rlock) MsgType() MsgType { return rlock }
func (m Rlock) encode(w *writer) { w.u8(m.Status) }
func decodeRlock(r *reader) Rlock {
	var m Rlock
	m.Status = r.u8()
	return m
}

type Tgetlock struct {
	Fid     uint32
	Getlock Getlock
}

func (Tgetlock) MsgType() MsgType { return tgetlock }
func (m Tgetlock) encode(w *writer) {
	w.u32(m.Fid)
	m.Getlock.encode(w)
}
func decodeTgetlock(r *reader) Tgetlock {
	var m Tgetlock
	m.Fid = r.u32()
	m.Getlock.decode(r)
	return m
}

type Rgetlock struct {
	Getlock Getlock
}

func (Rgetlock) MsgType() MsgType { return rgetlock }
func (m Rgetlock) encode(w *writer) { m.Getlock.encode(w) }
func decodeRgetlock(r *reader) Rgetlock {
	var m Rgetlock
	m.Getlock.decode(r)
	return m
}

type Tlink struct {
	Dfid uint32
	Fid  uint32
	Name string
}

func (Tlink) MsgType() MsgType { return tlink }
func (m Tlink) encode(w *writer) {
	w.u32(m.Dfid)
	w.u32(m.Fid)
	w.str(m.Name)
}
func decodeTlink(r *reader) Tlink {
	var m Tlink
	m.Dfid = r.u32()
	m.Fid = r.u32()
	m.Name = r.str()
	return m
}

type Rlink struct{}

func (Rlink) MsgType() MsgType   { return rlink }
func (Rlink) encode(w *writer)   {}
func decodeRlink(r *reader) Rlink { return Rlink{} }

type Tmkdir struct {
	Dfid uint32
	Name string
	Mode uint32
	Gid  uint32
}

func (Tmkdir) MsgType() MsgType { return tmkdir }
func (m Tmkdir) encode(w *writer) {
	w.u32(m.Dfid)
	w.str(m.Name)
	w.u32(m.Mode)
	w.u32(m.Gid)
}
func decodeTmkdir(r *reader) Tmkdir {
	var m Tmkdir
	m.Dfid = r.u32()
	m.Name = r.str()
	m.Mode = r.u32()
	m.Gid = r.u32()
	return m
}

type Rmkdir struct {
	Qid Qid
}

func (Rmkdir) MsgType() MsgType { return rmkdir }
func (m Rmkdir) encode(w *writer) { w.qid(m.Qid) }
func decodeRmkdir(r *reader) Rmkdir {
	var m Rmkdir
	m.Qid = r.qid()
	return m
}

type Trenameat struct {
	Olddirfid uint32
	Oldname   string
	Newdirfid uint32
	Newname   string
}

func (Trenameat) MsgType() MsgType { return trenameat }
func (m Trenameat) encode(w *writer) {
	w.u32(m.Olddirfid)
	w.str(m.Oldname)
	w.u32(m.Newdirfid)
	w.str(m.Newname)
}
func decodeTrenameat(r *reader) Trenameat {
	var m Trenameat
	m.Olddirfid = r.u32()
	m.Oldname = r.str()
	m.Newdirfid = r.u32()
	m.Newname = r.str()
	return m
}

type Rrenameat struct{}

func (Rrenameat) MsgType() MsgType        { return rrenameat }
func (Rrenameat) encode(w *writer)        {}
func decodeRrenameat(r *reader) Rrenameat { return Rrenameat{} }

type Tunlinkat struct {
	Dirfd uint32
	Name  string
	Flags uint32
}

func (Tunlinkat) MsgType() MsgType { return tunlinkat }
func (m Tunlinkat) encode(w *writer) {
	w.u32(m.Dirfd)
	w.str(m.Name)
	w.u32(m.Flags)
}
func decodeTunlinkat(r *reader) Tunlinkat {
	var m Tunlinkat
	m.Dirfd = r.u32()
	m.Name = r.str()
	m.Flags = r.u32()
	return m
}

type Runlinkat struct{}

func (Runlinkat) MsgType() MsgType        { return runlinkat }
func (Runlinkat) encode(w *writer)        {}
func decodeRunlinkat(r *reader) Runlinkat { return Runlinkat{} }
