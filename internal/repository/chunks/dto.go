package chunks

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	domchunk "github.com/groundctx/ragcore/internal/domain/chunk"
)

// chunkToHash flattens an embedded chunk into the hash layout the FT index
// is built over. Optional attributes are omitted when empty so tag filters
// on them never match stale zero values.
func chunkToHash(ec *domchunk.EmbeddedChunk) map[string]string {
	fields := map[string]string{
		"document_id":    ec.DocumentID,
		"chunk_index":    strconv.Itoa(ec.Chunk.Index),
		"start_pos":      strconv.Itoa(ec.Chunk.Metadata.StartPos),
		"end_pos":        strconv.Itoa(ec.Chunk.Metadata.EndPos),
		"token_estimate": strconv.Itoa(ec.Chunk.Metadata.TokenEstimate),
		"user_id":        ec.UserID,
		"file_name":      ec.FileName,
		"file_type":      ec.FileType,
		"dimensions":     strconv.Itoa(len(ec.Vector)),
		"__content":      ec.Chunk.Content,
		"__vector":       vectorToBytes(ec.Vector),
	}
	if ec.CompanyID != "" {
		fields["company_id"] = ec.CompanyID
	}
	if ec.DebateID != "" {
		fields["debate_id"] = ec.DebateID
	}
	if ec.PageNumber > 0 {
		fields["page_number"] = strconv.Itoa(ec.PageNumber)
	}
	if ec.SectionTitle != "" {
		fields["section_title"] = ec.SectionTitle
	}
	if !ec.UploadedAt.IsZero() {
		fields["uploaded_at"] = strconv.FormatInt(ec.UploadedAt.UnixMilli(), 10)
	}
	if len(ec.Tags) > 0 {
		fields["tags"] = strings.Join(ec.Tags, ",")
	}
	return fields
}

// vectorToBytes converts a float32 slice to little-endian binary, the layout
// FT.SEARCH expects for vector fields.
func vectorToBytes(vector []float32) string {
	buf := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return string(buf)
}
