package datagram

import (
	"container/list"
	"time"

	"github.com/oyaguma3/ntn-session-poc/pkg/model"
)

// Request は送信待ちのデータグラム要求。
type Request struct {
	ID              uint64
	Priority        model.Priority
	Payload         []byte
	NeedsPointingUI bool
	SendStartedAt   time.Time

	callback func(error)
}

// queue は挿入順を保持するIDキー付きの送信待ちキュー
type queue struct {
	order *list.List
	index map[uint64]*list.Element
}

func newQueue() *queue {
	return &queue{
		order: list.New(),
		index: make(map[uint64]*list.Element),
	}
}

func (q *queue) push(r *Request) {
	q.index[r.ID] = q.order.PushBack(r)
}

func (q *queue) front() *Request {
	e := q.order.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*Request)
}

func (q *queue) remove(id uint64) (*Request, bool) {
	e, ok := q.index[id]
	if !ok {
		return nil, false
	}
	delete(q.index, id)
	return q.order.Remove(e).(*Request), true
}

func (q *queue) contains(id uint64) bool {
	_, ok := q.index[id]
	return ok
}

func (q *queue) len() int {
	return q.order.Len()
}

// drain は全要求を挿入順に取り出してキューを空にする。
func (q *queue) drain() []*Request {
	out := make([]*Request, 0, q.order.Len())
	for e := q.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Request))
	}
	q.order.Init()
	clear(q.index)
	return out
}
