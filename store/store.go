package store

import (
	"log"
	"sync"

	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"rcbuf/rctree"
	"rcbuf/report"
)

var mgosession *mgo.Session

const db = "rcbuf"

var runcoll, delaycoll, nodecoll string

////////////////////////////////////////////////////////////////////////////////
// Worker pool for insert jobs

const MaxMgoThreads = 4

var wg sync.WaitGroup

type insertjob struct {
	col string
	doc interface{}
}

var jobs chan insertjob

var errmu sync.Mutex
var firsterr error

func worker() {
	s := mgosession.Copy()
	defer s.Close()

	for job := range jobs {
		c := s.DB(db).C(job.col)
		if err := c.Insert(job.doc); err != nil {
			errmu.Lock()
			if firsterr == nil {
				firsterr = err
			}
			errmu.Unlock()
		}
	}
	wg.Done()
}

// Synchronizers

func DoneMgo() {
	close(jobs)
}

// WaitMgo waits for queued inserts and returns the first insert error.
func WaitMgo() error {
	wg.Wait()
	errmu.Lock()
	defer errmu.Unlock()
	return firsterr
}

////////////////////////////////////////////////////////////////////////////////

// InitMgo sets up the collections of cache cname and starts the insert
// workers. With drop set, earlier runs in the cache are discarded.
func InitMgo(s *mgo.Session, cname string, drop bool) error {
	mgosession = s.Copy()

	runcoll = cname + "_runs"
	delaycoll = cname + "_delays"
	nodecoll = cname + "_nodes"

	if drop {
		dropCollection(runcoll)
		dropCollection(delaycoll)
		dropCollection(nodecoll)
	}

	for _, coll := range []string{delaycoll, nodecoll} {
		err := mgosession.DB(db).C(coll).EnsureIndex(mgo.Index{
			Key: []string{"run", "seq"},
		})
		if err != nil {
			return err
		}
	}

	err := mgosession.DB(db).C(runcoll).EnsureIndex(mgo.Index{
		Key:    []string{"run"},
		Unique: true,
	})
	if err != nil {
		return err
	}

	firsterr = nil
	jobs = make(chan insertjob, 100)
	for i := 0; i < MaxMgoThreads; i++ {
		wg.Add(1)
		go worker()
	}
	return nil
}

func dropCollection(coll string) {
	c := mgosession.DB(db).C(coll)
	err := c.DropCollection()
	if err != nil {
		log.Println(err)
	}
}

////////////////////////////////////////////////////////////////////////////////

type DelayDoc struct {
	Run   string  `bson:"run"`
	Seq   int     `bson:"seq"`
	Label int     `bson:"label"`
	Delay float64 `bson:"delay"`
}

type NodeDoc struct {
	Run   string  `bson:"run"`
	Seq   int     `bson:"seq"`
	Label int32   `bson:"label"`
	Cap   float64 `bson:"cap,omitempty"`
	Left  float64 `bson:"left,omitempty"`
	Right float64 `bson:"right,omitempty"`
	Inv   int32   `bson:"inv"`
}

func DelayDocs(run string, delays []rctree.Delay) (docs []DelayDoc) {
	for i, d := range delays {
		docs = append(docs, DelayDoc{run, i, d.Label, d.Delay})
	}
	return
}

func NodeDocs(run string, records []rctree.Record) (docs []NodeDoc) {
	for i, r := range records {
		docs = append(docs, NodeDoc{run, i, r.Label, r.Cap, r.Left, r.Right, r.Inv})
	}
	return
}

func (d NodeDoc) Record() rctree.Record {
	return rctree.Record{Label: d.Label, Cap: d.Cap, Left: d.Left, Right: d.Right, Inv: d.Inv}
}

// Save queues the summary, leaf delays and post-order records of a run.
func Save(s report.Summary, delays []rctree.Delay, records []rctree.Record) {
	jobs <- insertjob{runcoll, s}

	for _, doc := range DelayDocs(s.Run, delays) {
		jobs <- insertjob{delaycoll, doc}
	}

	for _, doc := range NodeDocs(s.Run, records) {
		jobs <- insertjob{nodecoll, doc}
	}
}

// LoadDelays fetches the leaf delays of a run in pre-order.
func LoadDelays(run string) (delays []rctree.Delay, err error) {
	var docs []DelayDoc
	err = mgosession.DB(db).C(delaycoll).Find(bson.M{"run": run}).Sort("seq").All(&docs)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		delays = append(delays, rctree.Delay{Label: d.Label, Delay: d.Delay})
	}
	return
}

// LoadRecords fetches the post-order records of a run.
func LoadRecords(run string) (records []rctree.Record, err error) {
	var docs []NodeDoc
	err = mgosession.DB(db).C(nodecoll).Find(bson.M{"run": run}).Sort("seq").All(&docs)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		records = append(records, d.Record())
	}
	return
}

// LastRun returns the id of the most recent run in the cache.
func LastRun() (string, error) {
	var s report.Summary
	err := mgosession.DB(db).C(runcoll).Find(nil).Sort("-date").One(&s)
	return s.Run, err
}
