package trace

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/cuemby/taskgraph/pkg/dispatch"
)

var bucketEvents = []byte("events")

// Record is one completed system's trace entry, as stored in the file.
type Record struct {
	Seq      uint64 `json:"seq"`
	Dispatch string `json:"dispatch"`
	System   string `json:"system"`
	Stage    int    `json:"stage"`
	Err      string `json:"err,omitempty"`
}

// Subscriber is satisfied by both *dispatch.Engine and *taskgraph.Engine,
// so Attach works with either without this package importing taskgraph.
type Subscriber interface {
	Subscribe(bufSize int) (<-chan dispatch.Event, func())
}

// Recorder appends every event it receives from an attached engine to a
// BoltDB file.
type Recorder struct {
	db          *bolt.DB
	unsubscribe func()
	done        chan struct{}
}

// Open creates or opens the trace file at path.
func Open(path string) (*Recorder, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEvents)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("trace: init buckets: %w", err)
	}

	return &Recorder{db: db}, nil
}

// Attach subscribes to eng and starts recording its events in the
// background. Attach may only be called once per Recorder.
func (r *Recorder) Attach(eng Subscriber) {
	events, unsubscribe := eng.Subscribe(32)
	r.unsubscribe = unsubscribe
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		for ev := range events {
			r.record(ev)
		}
	}()
}

func (r *Recorder) record(ev dispatch.Event) {
	rec := Record{Dispatch: ev.Dispatch, System: ev.Name, Stage: int(ev.Stage)}
	if ev.Err != nil {
		rec.Err = ev.Err.Error()
	}

	_ = r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEvents)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		rec.Seq = seq

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return b.Put(key, data)
	})
}

// Close stops recording and closes the underlying file. Close blocks
// until every event already sent to the subscription has been written.
func (r *Recorder) Close() error {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
	if r.done != nil {
		<-r.done
	}
	return r.db.Close()
}

// All reads every recorded event from the trace file at path, in the
// order they were written, without attaching to a live engine.
func All(path string) ([]Record, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}
	defer db.Close()

	var records []Record
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEvents)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("trace: read %s: %w", path, err)
	}
	return records, nil
}
