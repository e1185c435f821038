package gzip

import (
	"io"

	"github.com/nazgaron/gzflate/crc32x"
	"github.com/nazgaron/gzflate/internal/zio"
)

// parserState is the suspendable header parser's current stage, mirroring
// flate2-rs's GzHeaderParsingState (spec.md §4.4.3): each stage owns its own
// scratch buffer so a source that returns ErrWouldBlock mid-field loses
// nothing -- Parse just gets called again later and resumes exactly where
// it left off.
type parserState int

const (
	pStart parserState = iota
	pXlen
	pExtra
	pFilename
	pComment
	pCrc
	pDone
)

// HeaderParser incrementally parses a gzip member header from a
// BufferedSource, tolerating ErrWouldBlock between any two bytes. Call
// Parse repeatedly until it returns (true, nil); a nil error with a false
// done is never produced by this implementation (done is always true or
// err is non-nil), but the signature mirrors the original's Poll-shaped
// API for familiarity.
type HeaderParser struct {
	state parserState

	startBuf      [10]byte
	startProgress int

	xlenBuf      [2]byte
	xlenProgress int
	xlen         uint16

	extra          []byte
	extraProgress  int
	extraAllocated bool

	filename     []byte
	filenameDone bool

	comment     []byte
	commentDone bool

	crcBuf      [2]byte
	crcProgress int

	flg    byte
	hdrCRC crc32x.Crc
	header Header
}

// NewHeaderParser returns a parser ready to read a header from its first
// byte.
func NewHeaderParser() *HeaderParser { return &HeaderParser{} }

// Parse advances the parser as far as src currently allows. It returns
// (true, nil) once the full header (and, if present, its FHCRC) has been
// validated; the parsed Header is then available from Header(). Any other
// error -- including ErrWouldBlock -- leaves the parser's progress intact
// for a subsequent call.
func (p *HeaderParser) Parse(src zio.BufferedSource) (bool, error) {
	for {
		switch p.state {
		case pStart:
			if err := p.readN(src, p.startBuf[:], &p.startProgress); err != nil {
				return false, err
			}
			if p.startBuf[0] != magic1 || p.startBuf[1] != magic2 || p.startBuf[2] != methodDeflate {
				return false, ErrHeader
			}
			p.flg = p.startBuf[3]
			p.header.mtime = uint32(p.startBuf[4]) | uint32(p.startBuf[5])<<8 |
				uint32(p.startBuf[6])<<16 | uint32(p.startBuf[7])<<24
			p.header.operatingSystem = p.startBuf[9]
			p.header.hasOS = true
			p.state = pXlen

		case pXlen:
			if p.flg&flagFEXTRA != 0 {
				if err := p.readN(src, p.xlenBuf[:], &p.xlenProgress); err != nil {
					return false, err
				}
				p.xlen = uint16(p.xlenBuf[0]) | uint16(p.xlenBuf[1])<<8
			}
			p.state = pExtra

		case pExtra:
			if p.flg&flagFEXTRA != 0 {
				if !p.extraAllocated {
					p.extra = make([]byte, p.xlen)
					p.extraAllocated = true
				}
				if err := p.readN(src, p.extra, &p.extraProgress); err != nil {
					return false, err
				}
				p.header.extra = p.extra
			}
			p.state = pFilename

		case pFilename:
			if p.flg&flagFNAME != 0 {
				if err := p.readTerminated(src, &p.filename, &p.filenameDone); err != nil {
					return false, err
				}
				p.header.filename = p.filename
			}
			p.state = pComment

		case pComment:
			if p.flg&flagFCOMMENT != 0 {
				if err := p.readTerminated(src, &p.comment, &p.commentDone); err != nil {
					return false, err
				}
				p.header.comment = p.comment
			}
			p.state = pCrc

		case pCrc:
			if p.flg&flagFHCRC != 0 {
				if err := p.readNRaw(src, p.crcBuf[:], &p.crcProgress); err != nil {
					return false, err
				}
				stored := uint16(p.crcBuf[0]) | uint16(p.crcBuf[1])<<8
				if stored != uint16(p.hdrCRC.Sum32()) {
					return false, ErrChecksum
				}
			}
			p.state = pDone
			return true, nil

		case pDone:
			return true, nil
		}
	}
}

// Header returns the header parsed so far. Only meaningful once Parse has
// returned (true, nil).
func (p *HeaderParser) Header() Header { return p.header }

// readN fills buf[*progress:] from src, folding every newly read byte into
// the running header CRC (every header byte except the trailing FHCRC
// field itself contributes, per RFC 1952 §2.3.1).
func (p *HeaderParser) readN(src io.Reader, buf []byte, progress *int) error {
	for *progress < len(buf) {
		n, err := src.Read(buf[*progress:])
		if n > 0 {
			p.hdrCRC.Update(buf[*progress : *progress+n])
			*progress += n
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// readNRaw is readN without the CRC side effect, used only for the FHCRC
// field itself.
func (p *HeaderParser) readNRaw(src io.Reader, buf []byte, progress *int) error {
	for *progress < len(buf) {
		n, err := src.Read(buf[*progress:])
		*progress += n
		if err != nil {
			return err
		}
	}
	return nil
}

// readTerminated reads one byte at a time into dst until a zero terminator
// is seen, matching flate2-rs's byte-at-a-time filename/comment scan. A
// header's string fields are small enough that the simplicity of trivially
// resumable single-byte reads outweighs the extra syscalls.
func (p *HeaderParser) readTerminated(src io.Reader, dst *[]byte, terminated *bool) error {
	var b [1]byte
	for !*terminated {
		n, err := src.Read(b[:])
		if n > 0 {
			p.hdrCRC.Update(b[:n])
			if b[0] == 0 {
				*terminated = true
			} else {
				*dst = append(*dst, b[0])
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
