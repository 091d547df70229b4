package todolist

// Op is the single-value completion of one view-model operation.
// Callers may ignore it; the model state is patched either way.
type Op struct {
	done chan struct{}
	err  error
}

func newOp() *Op {
	return &Op{done: make(chan struct{})}
}

// finished returns an Op that has already completed with err.
func finished(err error) *Op {
	op := newOp()
	op.finish(err)
	return op
}

func (o *Op) finish(err error) {
	o.err = err
	close(o.done)
}

// Done is closed once the operation has completed.
func (o *Op) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the operation completes and returns its error.
func (o *Op) Wait() error {
	<-o.done
	return o.err
}
