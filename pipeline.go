package gemconv

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

type counters struct {
	total  atomic.Int64
	failed atomic.Int64
}

func findFiles(ctx context.Context, dir string) (<-chan string, <-chan error, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, entry := range entries {
			// Only the top level is scanned
			if entry.IsDir() || !isGEM(entry.Name()) {
				continue
			}

			select {
			case out <- filepath.Join(dir, entry.Name()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, errc, nil
}

func (c *Converter) fileWorker(ctx context.Context, in <-chan string, dir string, n *counters) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if ctx.Err() != nil {
				return
			}

			n.total.Add(1)
			if _, err := c.ConvertFile(file, dir); err != nil {
				if !c.keepGoing {
					errc <- err
					return
				}
				n.failed.Add(1)
				c.logger.Printf("Failed: %v\n", err)
			}
		}
	}()
	return errc, nil
}

// waitForPipeline returns the first error from any stage. On that error it
// calls cancel and keeps draining until every stage has finished.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Convert converts every GEM file in the directory src, writing the results
// to the directory dst which is created if necessary. Subdirectories of src
// are not visited. No conversion is still running once Convert returns.
func (c *Converter) Convert(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := findFiles(ctx, src)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	var n counters
	for i := 0; i < c.workers; i++ {
		errc, err := c.fileWorker(ctx, files, dst, &n)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(cancelFunc, errcList...); err != nil {
		return err
	}

	if failed := n.failed.Load(); failed > 0 {
		return &BatchError{
			Failed: int(failed),
			Total:  int(n.total.Load()),
		}
	}

	return nil
}
