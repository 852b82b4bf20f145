package provider

import (
	"io"
	"sync"
)

// Pipe streams a request body produced by the write function.
// An encoder error is handed over to the reader side
type Pipe struct {
	r         *io.PipeReader
	encodeErr error
	mu        sync.RWMutex
	wg        sync.WaitGroup
}

func NewPipe(write func(io.Writer) error) *Pipe {

	pr, pw := io.Pipe()

	p := &Pipe{
		r: pr,
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		err := write(pw)
		if err == io.ErrClosedPipe {
			err = io.EOF // reader gone, nobody to notify
		}

		// nil error closes the pipe with io.EOF
		_ = pw.CloseWithError(err)

		p.mu.Lock()
		p.encodeErr = err
		p.mu.Unlock()
	}()

	return p
}

func (p *Pipe) Read(out []byte) (n int, err error) {

	if intError := p.getErr(); intError != nil {
		return 0, intError
	}

	n, err = p.r.Read(out)
	if err == nil {
		if intError := p.getErr(); intError != nil {
			err = intError
		}
	}

	return
}

func (p *Pipe) Close() error {

	// unlocks the encoder if the body was not read up to the end
	_ = p.r.CloseWithError(io.ErrClosedPipe)
	p.wg.Wait()

	err := p.getErr()
	if err == io.EOF {
		return nil
	}

	return err
}

func (p *Pipe) getErr() (err error) {
	p.mu.RLock()
	err = p.encodeErr
	p.mu.RUnlock()

	return
}
