package session

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// FileMetadata describes a file transfer's manifest.
type FileMetadata struct {
	Filename string
	Size     int64
	MD5Hash  string
}

// EncodeFileMeta serializes metadata as a FILE_META frame payload:
// [FilenameLen(2B)][Filename][Size(8B)][MD5(32B hex)].
func EncodeFileMeta(meta *FileMetadata) []byte {
	name := []byte(meta.Filename)
	md5Hex := []byte(meta.MD5Hash)

	buf := make([]byte, 2+len(name)+8+len(md5Hex))
	binary.BigEndian.PutUint16(buf[0:2], uint16(len(name)))
	copy(buf[2:], name)
	offset := 2 + len(name)
	binary.BigEndian.PutUint64(buf[offset:offset+8], uint64(meta.Size))
	copy(buf[offset+8:], md5Hex)
	return buf
}

// DecodeFileMeta parses a FILE_META frame payload.
func DecodeFileMeta(data []byte) (*FileMetadata, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("file metadata too short")
	}
	nameLen := int(binary.BigEndian.Uint16(data[0:2]))
	if len(data) < 2+nameLen+8+32 {
		return nil, fmt.Errorf("file metadata truncated")
	}
	filename := string(data[2 : 2+nameLen])
	offset := 2 + nameLen
	size := int64(binary.BigEndian.Uint64(data[offset : offset+8]))
	md5Hex := string(data[offset+8 : offset+8+32])

	return &FileMetadata{Filename: filename, Size: size, MD5Hash: md5Hex}, nil
}

// ProgressFunc reports transfer progress.
type ProgressFunc func(done, total int64, status string)

// FileSender chunks a file into DATA frames bounded by FILE_META/FILE_END.
type FileSender struct {
	transport  *Transport
	chunkSize  int
	onProgress ProgressFunc
}

// NewFileSender builds a FileSender over transport.
func NewFileSender(transport *Transport) *FileSender {
	return &FileSender{transport: transport, chunkSize: MaxPayloadSize}
}

// OnProgress sets the progress callback.
func (fs *FileSender) OnProgress(cb ProgressFunc) { fs.onProgress = cb }

// SendFile transmits filePath as FILE_META, a sequence of DATA chunks,
// then FILE_END.
func (fs *FileSender) SendFile(filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	hash := md5.New()
	if _, err := io.Copy(hash, f); err != nil {
		return fmt.Errorf("hash file: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return fmt.Errorf("seek file: %w", err)
	}

	meta := &FileMetadata{
		Filename: filepath.Base(filePath),
		Size:     info.Size(),
		MD5Hash:  hex.EncodeToString(hash.Sum(nil)),
	}
	metaPayload := EncodeFileMeta(meta)
	if err := fs.transport.SendFrame(&Frame{Type: TypeFileMeta, PayloadLen: uint16(len(metaPayload)), Payload: metaPayload}); err != nil {
		return fmt.Errorf("send file meta: %w", err)
	}
	fs.progress(0, info.Size(), "sending metadata")

	buf := make([]byte, fs.chunkSize)
	var sent int64
	for {
		n, err := f.Read(buf)
		if n > 0 {
			if err := fs.transport.SendFrame(NewDataFrame(0, buf[:n])); err != nil {
				return fmt.Errorf("send chunk: %w", err)
			}
			sent += int64(n)
			fs.progress(sent, info.Size(), fmt.Sprintf("sending %d/%d bytes", sent, info.Size()))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
	}

	if err := fs.transport.SendFrame(&Frame{Type: TypeFileEnd}); err != nil {
		return fmt.Errorf("send file end: %w", err)
	}
	fs.progress(info.Size(), info.Size(), "complete")
	log.Printf("session: sent %s (%d bytes, md5 %s)", meta.Filename, meta.Size, meta.MD5Hash)
	return nil
}

func (fs *FileSender) progress(done, total int64, status string) {
	if fs.onProgress != nil {
		fs.onProgress(done, total, status)
	}
}

// FileReceiver reassembles a file from FILE_META/DATA/FILE_END frames and
// verifies it against the sender's MD5 manifest.
type FileReceiver struct {
	transport  *Transport
	outputDir  string
	onProgress ProgressFunc
}

// NewFileReceiver builds a FileReceiver writing into outputDir.
func NewFileReceiver(transport *Transport, outputDir string) *FileReceiver {
	return &FileReceiver{transport: transport, outputDir: outputDir}
}

// OnProgress sets the progress callback.
func (fr *FileReceiver) OnProgress(cb ProgressFunc) { fr.onProgress = cb }

// ReceiveFile waits for and reassembles one file transfer.
func (fr *FileReceiver) ReceiveFile(timeout time.Duration) (*FileMetadata, error) {
	metaFrame, err := fr.transport.ReceiveFrame(timeout)
	if err != nil {
		return nil, fmt.Errorf("receive file meta: %w", err)
	}
	if metaFrame.Type != TypeFileMeta {
		return nil, fmt.Errorf("expected FILE_META, got %s", metaFrame.TypeName())
	}
	meta, err := DecodeFileMeta(metaFrame.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode file meta: %w", err)
	}
	fr.progress(0, meta.Size, fmt.Sprintf("receiving %s", meta.Filename))

	outPath := filepath.Join(fr.outputDir, meta.Filename)
	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	hash := md5.New()
	var received int64
	for received < meta.Size {
		frame, err := fr.transport.ReceiveFrame(5 * time.Second)
		if err != nil {
			return nil, fmt.Errorf("receive chunk: %w", err)
		}
		switch frame.Type {
		case TypeData:
			n, err := out.Write(frame.Payload[:frame.PayloadLen])
			if err != nil {
				return nil, fmt.Errorf("write chunk: %w", err)
			}
			hash.Write(frame.Payload[:frame.PayloadLen])
			received += int64(n)
			fr.progress(received, meta.Size, fmt.Sprintf("receiving %d/%d bytes", received, meta.Size))
		case TypeFileEnd:
			received = meta.Size
		default:
			log.Printf("session: unexpected frame type during transfer: %s", frame.TypeName())
		}
	}

	got := hex.EncodeToString(hash.Sum(nil))
	if got != meta.MD5Hash {
		return nil, fmt.Errorf("md5 mismatch: want %s, got %s", meta.MD5Hash, got)
	}
	fr.progress(meta.Size, meta.Size, "complete, md5 verified")
	log.Printf("session: received %s (%d bytes, md5 verified)", meta.Filename, meta.Size)
	return meta, nil
}

func (fr *FileReceiver) progress(done, total int64, status string) {
	if fr.onProgress != nil {
		fr.onProgress(done, total, status)
	}
}
