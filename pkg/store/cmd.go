package store

import (
	"bytes"
	"encoding/binary"

	bolt "go.etcd.io/bbolt"
	"src.elcc.sh/pkg/store/storedefs"
)

// Commands are keyed by their sequence number, encoded big-endian so that the
// key order of the bucket is the sequence order.
const bucketCmd = "cmd"

func init() {
	initDB["initialize command history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	}
}

// NextCmdSeq returns the next sequence number of the command history.
func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		seq = tx.Bucket([]byte(bucketCmd)).Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddCmd adds a new command to the command history and returns its sequence
// number.
func (s *dbStore) AddCmd(cmd string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(cmd))
	})
	return int(seq), err
}

// DelCmd deletes a command history item with the given sequence number.
func (s *dbStore) DelCmd(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketCmd)).Delete(marshalSeq(uint64(seq)))
	})
}

// Cmd queries the command history item with the specified sequence number.
func (s *dbStore) Cmd(seq int) (string, error) {
	var cmd string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketCmd)).Get(marshalSeq(uint64(seq)))
		if v == nil {
			return storedefs.ErrNoMatchingCmd
		}
		cmd = string(v)
		return nil
	})
	return cmd, err
}

// CmdsWithSeq returns all commands with sequence numbers in [from, upto).
func (s *dbStore) CmdsWithSeq(from, upto int) ([]storedefs.Cmd, error) {
	var cmds []storedefs.Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketCmd)).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			cmds = append(cmds, storedefs.Cmd{Text: string(v), Seq: int(unmarshalSeq(k))})
		}
		return nil
	})
	return cmds, err
}

// NextCmd finds the first command after the given sequence number (inclusive)
// with the given prefix.
func (s *dbStore) NextCmd(from int, prefix string) (storedefs.Cmd, error) {
	var cmd storedefs.Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketCmd)).Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil; k, v = c.Next() {
			if bytes.HasPrefix(v, p) {
				cmd = storedefs.Cmd{Text: string(v), Seq: int(unmarshalSeq(k))}
				return nil
			}
		}
		return storedefs.ErrNoMatchingCmd
	})
	return cmd, err
}

// PrevCmd finds the last command before the given sequence number (exclusive)
// with the given prefix.
func (s *dbStore) PrevCmd(upto int, prefix string) (storedefs.Cmd, error) {
	var cmd storedefs.Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketCmd)).Cursor()
		p := []byte(prefix)

		var k, v []byte
		if k, _ = c.Seek(marshalSeq(uint64(upto))); k == nil {
			// upto is past the last command.
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		for ; k != nil; k, v = c.Prev() {
			if bytes.HasPrefix(v, p) {
				cmd = storedefs.Cmd{Text: string(v), Seq: int(unmarshalSeq(k))}
				return nil
			}
		}
		return storedefs.ErrNoMatchingCmd
	})
	return cmd, err
}

// TrimCmds deletes the oldest commands so that at most keep commands remain,
// and returns the number of deleted commands. Sequence numbers are not reused.
func (s *dbStore) TrimCmds(keep int) (int, error) {
	deleted := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		excess := b.Stats().KeyN - keep
		if excess <= 0 {
			return nil
		}
		var keys [][]byte
		c := b.Cursor()
		for k, _ := c.First(); k != nil && len(keys) < excess; k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if deleted > 0 {
		logger.Printf("trimmed %d commands from history", deleted)
	}
	return deleted, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
