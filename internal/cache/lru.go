package cache

// lruNode is a node in a doubly-linked LRU list.
// The node stores its key so eviction can delete it from the parent map.
type lruNode[K comparable, V any] struct {
	key   K
	value V
	prev  *lruNode[K, V]
	next  *lruNode[K, V]
}

// lruList is a doubly-linked list ordered by recency.
// The head is the most recently used, the tail the least recently used.
// The list is not thread-safe; callers must handle synchronization.
type lruList[K comparable, V any] struct {
	head *lruNode[K, V]
	tail *lruNode[K, V]
	len  int
}

// pushFront inserts node at the front.
func (l *lruList[K, V]) pushFront(node *lruNode[K, V]) {
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

// moveToFront marks node as most recently used.
func (l *lruList[K, V]) moveToFront(node *lruNode[K, V]) {
	if node == l.head {
		return
	}
	l.unlink(node)
	l.pushFront(node)
}

// back returns the least recently used node, or nil.
func (l *lruList[K, V]) back() *lruNode[K, V] {
	return l.tail
}

// unlink removes node from the list.
func (l *lruList[K, V]) unlink(node *lruNode[K, V]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	l.len--
}
