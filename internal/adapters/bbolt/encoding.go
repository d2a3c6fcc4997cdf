// Binary keys for the creation-time index.
//
// The "created" bucket orders reports chronologically. bbolt sorts keys
// byte-wise, so the key is the creation time as big-endian unix nanoseconds
// followed by the report id (which breaks ties between identical timestamps):
//
//	nanos: uint64 (big-endian, offset by 1<<63 so pre-1970 times sort first)
//	id:    [n]byte
package bbolt

import (
	"encoding/binary"
	"fmt"
	"time"
)

// timeKeySize is the byte size of the timestamp prefix.
const timeKeySize = 8

// encodeTimeKey builds the index key for a report created at t with the given id.
func encodeTimeKey(t time.Time, id string) []byte {
	buf := make([]byte, timeKeySize+len(id))
	binary.BigEndian.PutUint64(buf, uint64(t.UnixNano())^(1<<63))
	copy(buf[timeKeySize:], id)
	return buf
}

// decodeTimeKey splits an index key back into its timestamp and id.
func decodeTimeKey(key []byte) (time.Time, string, error) {
	if len(key) < timeKeySize {
		return time.Time{}, "", fmt.Errorf("time key too short: %d bytes", len(key))
	}
	nanos := int64(binary.BigEndian.Uint64(key[:timeKeySize]) ^ (1 << 63))
	return time.Unix(0, nanos).UTC(), string(key[timeKeySize:]), nil
}
