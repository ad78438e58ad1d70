package store

// Op is a single write that is deferred until a batch is written. A nil
// value means the key is deleted.
type Op struct {
	Key   []byte
	Value []byte
}

// Apply writes the operation to out.
func (o Op) Apply(out SetDeleter) error {
	if o.Value == nil {
		return out.Delete(o.Key)
	}
	return out.Set(o.Key, o.Value)
}

// NonAtomicBatch collects writes in memory and applies them one by one to the
// underlying store on Write. A failed Write can leave the store partially
// updated, so only use it on top of in memory stores or stores that are
// themselves cached.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	b.ops = append(b.ops, Op{Key: key, Value: value})
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, Op{Key: key})
	return nil
}

// Write stops at the first failing operation. The batch is reset only on
// success.
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}
