package boltdb

import (
	"bytes"
	"encoding/gob"

	"github.com/rs/zerolog/log"

	"github.com/driftbox/driftbox/internal/entity"
)

func serializeEntry(e *entity.Entry) []byte {
	var buffer bytes.Buffer
	enc := gob.NewEncoder(&buffer)
	if err := enc.Encode(e); err != nil {
		log.Fatal().Str("c", "boltdb provider").Err(err).Msg("failed to serialize entry")
	}
	return buffer.Bytes()
}

func deserializeEntry(data []byte) *entity.Entry {
	e := new(entity.Entry)
	dec := gob.NewDecoder(bytes.NewBuffer(data))
	if err := dec.Decode(e); err != nil {
		log.Fatal().Str("c", "boltdb provider").Err(err).Msg("failed to deserialize entry")
	}
	return e
}
