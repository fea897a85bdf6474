package tsnsim

//
// Priority queues
//
// The device queue orders devices by (local_time, name); the framelet
// queue orders framelets by (-priority, local_deadline, insertion_seq).
// Both are container/heap.Interface implementations with an explicit
// monotonic insertion-sequence tie-break, in the register of the
// heap-backed event queue used by discrete-event simulators in this
// corpus (see DESIGN.md).
//

import "container/heap"

// deviceQueue is a min-heap of devices ordered by (local_time, name).
type deviceQueue struct {
	items []*Device
}

// newDeviceQueue creates an empty [deviceQueue].
func newDeviceQueue() *deviceQueue {
	dq := &deviceQueue{items: []*Device{}}
	heap.Init(dq)
	return dq
}

// Len implements heap.Interface.
func (dq *deviceQueue) Len() int { return len(dq.items) }

// Less implements heap.Interface.
func (dq *deviceQueue) Less(i, j int) bool {
	a, b := dq.items[i], dq.items[j]
	if a.localTime != b.localTime {
		return a.localTime < b.localTime
	}
	return a.Name < b.Name
}

// Swap implements heap.Interface.
func (dq *deviceQueue) Swap(i, j int) {
	dq.items[i], dq.items[j] = dq.items[j], dq.items[i]
}

// Push implements heap.Interface. Use [deviceQueue.push] instead.
func (dq *deviceQueue) Push(x any) {
	dq.items = append(dq.items, x.(*Device))
}

// Pop implements heap.Interface. Use [deviceQueue.pop] instead.
func (dq *deviceQueue) Pop() any {
	old := dq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	dq.items = old[:n-1]
	return item
}

// push inserts a device into the queue.
func (dq *deviceQueue) push(d *Device) {
	heap.Push(dq, d)
}

// pop removes and returns the device with the smallest local time.
func (dq *deviceQueue) pop() *Device {
	return heap.Pop(dq).(*Device)
}

// min returns the device with the smallest local time without
// removing it, or nil if the queue is empty.
func (dq *deviceQueue) min() *Device {
	if len(dq.items) == 0 {
		return nil
	}
	return dq.items[0]
}

// frameletQueue is a min-heap of framelets ordered by
// (-priority, local_deadline, insertion_seq): higher priority first,
// then earliest deadline, then arrival order.
type frameletQueue struct {
	items []*Framelet
}

// newFrameletQueue creates an empty [frameletQueue].
func newFrameletQueue() *frameletQueue {
	fq := &frameletQueue{items: []*Framelet{}}
	heap.Init(fq)
	return fq
}

// Len implements heap.Interface.
func (fq *frameletQueue) Len() int { return len(fq.items) }

// Less implements heap.Interface.
func (fq *frameletQueue) Less(i, j int) bool {
	a, b := fq.items[i], fq.items[j]
	if a.Priority != b.Priority {
		return a.Priority > b.Priority // strict priority: higher first
	}
	da := a.Instance.LocalDeadline
	db := b.Instance.LocalDeadline
	if da != db {
		return da < db // EDF: earliest deadline first
	}
	return a.insertionSeq < b.insertionSeq // stable on ties
}

// Swap implements heap.Interface.
func (fq *frameletQueue) Swap(i, j int) {
	fq.items[i], fq.items[j] = fq.items[j], fq.items[i]
}

// Push implements heap.Interface. Use [frameletQueue.push] instead.
func (fq *frameletQueue) Push(x any) {
	fq.items = append(fq.items, x.(*Framelet))
}

// Pop implements heap.Interface. Use [frameletQueue.pop] instead.
func (fq *frameletQueue) Pop() any {
	old := fq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	fq.items = old[:n-1]
	return item
}

// push inserts a framelet into the queue.
func (fq *frameletQueue) push(f *Framelet) {
	heap.Push(fq, f)
}

// pop removes and returns the highest-priority framelet.
func (fq *frameletQueue) pop() *Framelet {
	return heap.Pop(fq).(*Framelet)
}

// empty reports whether the queue has no framelets.
func (fq *frameletQueue) empty() bool {
	return len(fq.items) == 0
}
