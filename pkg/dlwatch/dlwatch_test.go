package dlwatch_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/black-desk/dlwatch/internal/tests/logger"
	. "github.com/black-desk/dlwatch/pkg/dlwatch"
	"github.com/black-desk/dlwatch/pkg/dlwatch/config"
	"github.com/black-desk/dlwatch/pkg/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testConfig = `
version: 1
poll-interval: 10ms
settle-delay: 50ms
progress-every: 2
timeout: 1s
`

func touch(dir, name string) {
	err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644)
	Expect(err).To(Succeed())
}

// download writes name the way a browser does,
// under a temporary name first.
func download(dir, name string) error {
	tmp := filepath.Join(dir, name+".crdownload")
	err := os.WriteFile(tmp, []byte("partial content"), 0o644)
	if err != nil {
		return err
	}

	return os.Rename(tmp, filepath.Join(dir, name))
}

// touchInOrder creates files one by one,
// far enough apart for their creation times to differ.
func touchInOrder(dir string, names ...string) {
	for i := range names {
		touch(dir, names[i])
		time.Sleep(30 * time.Millisecond)
	}
}

var _ = Describe("Download watcher", func() {
	var (
		dir string
		cfg *config.Config
		log *zap.SugaredLogger
		w   *Watcher
		err error
	)

	BeforeEach(func() {
		dir, err = os.MkdirTemp("", "dlwatch-*")
		Expect(err).To(Succeed())
		DeferCleanup(os.RemoveAll, dir)

		cfg, err = config.New(config.WithContent([]byte(testConfig)))
		Expect(err).To(Succeed())

		log, err = logger.ProvideLogger()
		Expect(err).To(Succeed())
	})

	JustBeforeEach(func() {
		w, err = New(WithConfig(cfg), WithLogger(log))
		Expect(err).To(Succeed())
	})

	Context("created without configuration", func() {
		JustBeforeEach(func() {
			w, err = New()
		})

		It("should use the default configuration.", func() {
			Expect(err).To(Succeed())
			Expect(w).NotTo(BeNil())
		})
	})

	Context("created with an invalid configuration", func() {
		DescribeTable("should fail instead of polling with it",
			func(cfg *config.Config) {
				_, err = New(WithConfig(cfg))
				Expect(err).To(HaveOccurred())
			},
			Entry("zero value", &config.Config{}),
			Entry("no progress cadence", &config.Config{
				Version:      "1",
				PollInterval: time.Millisecond,
				Timeout:      time.Second,
			}),
			Entry("no poll interval", &config.Config{
				Version:       "1",
				ProgressEvery: 1,
				Timeout:       time.Second,
			}),
		)
	})

	DescribeTable("validate a directory",
		func(pathOf func(dir string) string, expectErr error) {
			err = ValidateDirectory(pathOf(dir))
			if expectErr == nil {
				Expect(err).To(Succeed())
				return
			}
			Expect(err).To(MatchError(expectErr))
		},
		Entry("existing directory",
			func(dir string) string { return dir }, nil),
		Entry("missing path",
			func(dir string) string { return filepath.Join(dir, "missing") },
			ErrDirectoryNotFound),
		Entry("empty path",
			func(string) string { return "" },
			ErrDirectoryNotFound),
		Entry("regular file",
			func(dir string) string {
				touch(dir, "file.txt")
				return filepath.Join(dir, "file.txt")
			},
			ErrNotADirectory),
		Entry("path below a regular file",
			func(dir string) string {
				touch(dir, "file.txt")
				return filepath.Join(dir, "file.txt", "sub")
			},
			ErrDirectoryNotFound),
	)

	Describe("LatestFile", func() {
		var (
			path  string
			found bool
		)

		It("should reject a missing directory.", func() {
			_, _, err = w.LatestFile(filepath.Join(dir, "missing"))
			Expect(err).To(MatchError(ErrDirectoryNotFound))
		})

		It("should reject a regular file.", func() {
			touch(dir, "file.txt")
			_, _, err = w.LatestFile(filepath.Join(dir, "file.txt"))
			Expect(err).To(MatchError(ErrNotADirectory))
		})

		It("should find nothing in an empty directory.", func() {
			path, found, err = w.LatestFile(dir)
			Expect(err).To(Succeed())
			Expect(found).To(BeFalse())
			Expect(path).To(BeEmpty())
		})

		It("should find nothing when only temporary files exist.", func() {
			touch(dir, "a.pdf.crdownload")
			touch(dir, "b.zip.part")
			touch(dir, "c.tmp")

			path, found, err = w.LatestFile(dir)
			Expect(err).To(Succeed())
			Expect(found).To(BeFalse())
		})

		It("should ignore directories.", func() {
			touch(dir, "a.pdf")
			time.Sleep(30 * time.Millisecond)
			Expect(os.Mkdir(filepath.Join(dir, "newer"), 0o755)).To(Succeed())

			path, found, err = w.LatestFile(dir)
			Expect(err).To(Succeed())
			Expect(found).To(BeTrue())
			Expect(path).To(Equal(filepath.Join(dir, "a.pdf")))
		})

		It("should match temporary suffixes case-sensitively.", func() {
			touch(dir, "a.pdf")
			time.Sleep(30 * time.Millisecond)
			touch(dir, "b.PART")

			path, found, err = w.LatestFile(dir)
			Expect(err).To(Succeed())
			Expect(path).To(Equal(filepath.Join(dir, "b.PART")))
		})

		It("should return the most recently created stable file.", func() {
			touchInOrder(dir, "a.pdf", "b.pdf", "c.pdf")
			touch(dir, "d.pdf.crdownload")

			path, found, err = w.LatestFile(dir)
			Expect(err).To(Succeed())
			Expect(found).To(BeTrue())
			Expect(path).To(Equal(filepath.Join(dir, "c.pdf")))
		})

		It("should follow symlinks to regular files.", func() {
			touch(dir, "target.bin")
			time.Sleep(30 * time.Millisecond)
			Expect(os.Symlink(
				filepath.Join(dir, "target.bin"),
				filepath.Join(dir, "link.bin"),
			)).To(Succeed())
			Expect(os.Symlink(
				filepath.Join(dir, "missing.bin"),
				filepath.Join(dir, "broken.bin"),
			)).To(Succeed())

			var names types.Snapshot
			names, err = w.Snapshot(dir)
			Expect(err).To(Succeed())
			Expect(names.Names()).To(Equal([]string{"link.bin", "target.bin"}))
		})

		Context("on an unreadable directory", func() {
			BeforeEach(func() {
				if os.Geteuid() == 0 {
					Skip("Permission bits do not apply to root.")
				}

				touch(dir, "a.pdf")
				Expect(os.Chmod(dir, 0o300)).To(Succeed())
				DeferCleanup(os.Chmod, dir, os.FileMode(0o755))
			})

			It("should fail with ErrPermissionDenied.", func() {
				_, _, err = w.LatestFile(dir)
				Expect(err).To(MatchError(ErrPermissionDenied))
			})
		})

		Context("when listing is refused", func() {
			JustBeforeEach(func() {
				touch(dir, "a.pdf")
				w.SetReadDir(func(dir string) ([]fs.DirEntry, error) {
					return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrPermission}
				})
			})

			It("should fail with ErrPermissionDenied.", func() {
				_, _, err = w.LatestFile(dir)
				Expect(err).To(MatchError(ErrPermissionDenied))
			})

			It("should fail to take a snapshot.", func() {
				_, err = w.Snapshot(dir)
				Expect(err).To(MatchError(ErrPermissionDenied))
			})

			It("should fail to wait for a new file.", func() {
				_, err = w.WaitForNewFile(context.Background(), dir, time.Second, "")
				Expect(err).To(MatchError(ErrPermissionDenied))
			})

			It("should keep polling while waiting for a download.", func() {
				_, err = w.WaitForDownload(
					context.Background(), dir, types.NewSnapshot(), 50*time.Millisecond,
				)
				var timeoutErr *ErrTimeout
				Expect(errors.As(err, &timeoutErr)).To(BeTrue(), "%v", err)
			})
		})

		Context("when listing fails otherwise", func() {
			JustBeforeEach(func() {
				touch(dir, "a.pdf")
				w.SetReadDir(func(dir string) ([]fs.DirEntry, error) {
					return nil, &fs.PathError{Op: "readdirent", Path: dir, Err: syscall.EIO}
				})
			})

			It("should report no file.", func() {
				_, found, err = w.LatestFile(dir)
				Expect(err).To(Succeed())
				Expect(found).To(BeFalse())
			})
		})
	})

	Describe("selecting the latest file", func() {
		times := map[string]time.Time{
			"file1.txt": time.Unix(100, 0),
			"file2.txt": time.Unix(300, 0),
			"file3.txt": time.Unix(200, 0),
		}

		fakeBirthTime := func(path string) (time.Time, error) {
			t, ok := times[filepath.Base(path)]
			if !ok {
				return time.Time{}, os.ErrNotExist
			}
			return t, nil
		}

		JustBeforeEach(func() {
			w.SetBirthTime(fakeBirthTime)
		})

		DescribeTable("from candidates listed in any order",
			func(names []string) {
				path, ok := w.SelectLatest("/test/dir", names)
				Expect(ok).To(BeTrue())
				Expect(path).To(Equal("/test/dir/file2.txt"))
			},
			Entry("ascending", []string{"file1.txt", "file2.txt", "file3.txt"}),
			Entry("latest first", []string{"file2.txt", "file3.txt", "file1.txt"}),
			Entry("latest last", []string{"file3.txt", "file1.txt", "file2.txt"}),
		)

		It("should find nothing among no candidates.", func() {
			_, ok := w.SelectLatest("/test/dir", nil)
			Expect(ok).To(BeFalse())
		})

		It("should never pick a temporary file.", func() {
			times["file4.txt.part"] = time.Unix(400, 0)
			DeferCleanup(func() { delete(times, "file4.txt.part") })

			path, ok := w.SelectLatest("/test/dir", []string{"file1.txt", "file4.txt.part"})
			Expect(ok).To(BeTrue())
			Expect(path).To(Equal("/test/dir/file1.txt"))
		})

		It("should find nothing when a creation time cannot be read.", func() {
			path, ok := w.SelectLatest("/test/dir", []string{"file1.txt", "gone.txt", "file2.txt"})
			Expect(ok).To(BeFalse())
			Expect(path).To(BeEmpty())
		})
	})

	Describe("Snapshot", func() {
		It("should list stable files only.", func() {
			touch(dir, "a.pdf")
			touch(dir, "b.zip")
			touch(dir, "c.pdf.crdownload")
			Expect(os.Mkdir(filepath.Join(dir, "sub"), 0o755)).To(Succeed())

			var s types.Snapshot
			s, err = w.Snapshot(dir)
			Expect(err).To(Succeed())
			Expect(s.Names()).To(Equal([]string{"a.pdf", "b.zip"}))
		})

		It("should reject a missing directory.", func() {
			_, err = w.Snapshot(filepath.Join(dir, "missing"))
			Expect(err).To(MatchError(ErrDirectoryNotFound))
		})
	})

	Describe("WaitForNewFile", func() {
		var (
			ctx  context.Context
			path string
		)

		BeforeEach(func() {
			ctx = context.Background()
		})

		Context("without a previous path", func() {
			Context("and a slow poll interval", func() {
				BeforeEach(func() {
					cfg.PollInterval = 500 * time.Millisecond
				})

				It("should return the first stable file without waiting.", func() {
					touch(dir, "a.pdf")

					start := time.Now()
					path, err = w.WaitForNewFile(ctx, dir, time.Second, "")
					Expect(err).To(Succeed())
					Expect(path).To(Equal(filepath.Join(dir, "a.pdf")))
					Expect(time.Since(start)).To(BeNumerically("<", cfg.PollInterval))
				})
			})

			It("should wait for a download to finish.", func() {
				p := pool.New().WithContext(ctx).WithCancelOnError()

				p.Go(func(ctx context.Context) error {
					time.Sleep(50 * time.Millisecond)
					return download(dir, "report.pdf")
				})

				p.Go(func(ctx context.Context) (err error) {
					path, err = w.WaitForNewFile(ctx, dir, time.Second, "")
					return
				})

				Expect(p.Wait()).To(Succeed())
				Expect(path).To(Equal(filepath.Join(dir, "report.pdf")))
			})
		})

		Context("with a previous path", func() {
			var previous string

			BeforeEach(func() {
				touch(dir, "old.pdf")
				previous = filepath.Join(dir, "old.pdf")
				time.Sleep(30 * time.Millisecond)
			})

			It("should return only once a newer file becomes the latest.", func() {
				p := pool.New().WithContext(ctx).WithCancelOnError()

				p.Go(func(ctx context.Context) error {
					time.Sleep(50 * time.Millisecond)
					return download(dir, "new.pdf")
				})

				p.Go(func(ctx context.Context) (err error) {
					path, err = w.WaitForNewFile(ctx, dir, time.Second, previous)
					return
				})

				Expect(p.Wait()).To(Succeed())
				Expect(path).To(Equal(filepath.Join(dir, "new.pdf")))
			})

			It("should time out when the latest file never changes.", func() {
				touch(dir, "pending.pdf.crdownload")

				start := time.Now()
				_, err = w.WaitForNewFile(ctx, dir, 100*time.Millisecond, previous)

				var timeoutErr *ErrTimeout
				Expect(errors.As(err, &timeoutErr)).To(BeTrue(), "%v", err)
				Expect(timeoutErr.Directory).To(Equal(dir))
				Expect(timeoutErr.Elapsed).To(BeNumerically(">=", 100*time.Millisecond))
				Expect(time.Since(start)).To(BeNumerically(">=", 100*time.Millisecond))
			})
		})

		It("should fail when the directory is missing.", func() {
			_, err = w.WaitForNewFile(ctx, filepath.Join(dir, "missing"), time.Second, "")
			Expect(err).To(MatchError(ErrDirectoryNotFound))
		})

		It("should fail when the directory disappears while waiting.", func() {
			sub := filepath.Join(dir, "sub")
			Expect(os.Mkdir(sub, 0o755)).To(Succeed())

			p := pool.New().WithContext(ctx)

			p.Go(func(ctx context.Context) error {
				time.Sleep(50 * time.Millisecond)
				return os.Remove(sub)
			})

			p.Go(func(ctx context.Context) error {
				_, err = w.WaitForNewFile(ctx, sub, time.Second, "")
				return nil
			})

			Expect(p.Wait()).To(Succeed())
			Expect(err).To(MatchError(ErrDirectoryNotFound))
		})

		It("should stop when the context is cancelled.", func() {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			_, err = w.WaitForNewFile(ctx, dir, time.Second, "")
			Expect(err).To(MatchError(context.DeadlineExceeded))
		})
	})

	Describe("WaitForDownload", func() {
		var (
			ctx    context.Context
			before types.Snapshot
			result Download
		)

		BeforeEach(func() {
			ctx = context.Background()

			touch(dir, "a.pdf")
			touch(dir, "b.zip")
		})

		JustBeforeEach(func() {
			before, err = w.Snapshot(dir)
			Expect(err).To(Succeed())
			Expect(before.Names()).To(Equal([]string{"a.pdf", "b.zip"}))
		})

		It("should return the new file after the settle delay.", func() {
			touch(dir, "c.csv")

			start := time.Now()
			result, err = w.WaitForDownload(ctx, dir, before, time.Second)
			Expect(err).To(Succeed())
			Expect(result.Path).To(Equal(filepath.Join(dir, "c.csv")))
			Expect(result.Late).To(BeFalse())
			Expect(time.Since(start)).To(BeNumerically(">=", cfg.SettleDelay))
		})

		It("should wait for a download still in progress.", func() {
			p := pool.New().WithContext(ctx).WithCancelOnError()

			p.Go(func(ctx context.Context) error {
				time.Sleep(50 * time.Millisecond)
				return download(dir, "c.csv")
			})

			p.Go(func(ctx context.Context) (err error) {
				result, err = w.WaitForDownload(ctx, dir, before, time.Second)
				return
			})

			Expect(p.Wait()).To(Succeed())
			Expect(result.Path).To(Equal(filepath.Join(dir, "c.csv")))
			Expect(result.Late).To(BeFalse())
		})

		It("should return the newest of several new files.", func() {
			touchInOrder(dir, "c.csv", "d.csv")

			result, err = w.WaitForDownload(ctx, dir, before, time.Second)
			Expect(err).To(Succeed())
			Expect(result.Path).To(Equal(filepath.Join(dir, "d.csv")))
		})

		It("should time out when nothing new appears.", func() {
			touch(dir, "c.csv.crdownload")

			_, err = w.WaitForDownload(ctx, dir, before, 100*time.Millisecond)

			var timeoutErr *ErrTimeout
			Expect(errors.As(err, &timeoutErr)).To(BeTrue(), "%v", err)
			Expect(timeoutErr.Directory).To(Equal(dir))
		})

		It("should not report files removed since the snapshot.", func() {
			Expect(os.Remove(filepath.Join(dir, "a.pdf"))).To(Succeed())

			_, err = w.WaitForDownload(ctx, dir, before, 100*time.Millisecond)

			var timeoutErr *ErrTimeout
			Expect(errors.As(err, &timeoutErr)).To(BeTrue(), "%v", err)
		})

		It("should stop when the context is cancelled.", func() {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			_, err = w.WaitForDownload(ctx, dir, before, time.Second)
			Expect(err).To(MatchError(context.DeadlineExceeded))
		})

		Context("when the poll interval outlasts the timeout", func() {
			BeforeEach(func() {
				cfg.PollInterval = 300 * time.Millisecond
			})

			It("should report a file found by the final check as late.", func() {
				p := pool.New().WithContext(ctx).WithCancelOnError()

				p.Go(func(ctx context.Context) error {
					time.Sleep(100 * time.Millisecond)
					return download(dir, "c.csv")
				})

				p.Go(func(ctx context.Context) (err error) {
					result, err = w.WaitForDownload(ctx, dir, before, 20*time.Millisecond)
					return
				})

				Expect(p.Wait()).To(Succeed())
				Expect(result.Path).To(Equal(filepath.Join(dir, "c.csv")))
				Expect(result.Late).To(BeTrue())
			})
		})

		Context("with an observed logger", func() {
			var logs *observer.ObservedLogs

			BeforeEach(func() {
				var core zapcore.Core
				core, logs = observer.New(zapcore.InfoLevel)
				log = zap.New(core).Sugar()
			})

			It("should log progress every few polls.", func() {
				_, err = w.WaitForDownload(ctx, dir, before, 100*time.Millisecond)
				Expect(err).To(HaveOccurred())

				progress := logs.FilterMessage("Still waiting for download.").All()
				Expect(progress).NotTo(BeEmpty())
				for i := range progress {
					polls := progress[i].ContextMap()["polls"]
					Expect(polls).To(BeNumerically(">", 0))
					Expect(polls.(int64) % int64(cfg.ProgressEvery)).To(BeZero())
				}
			})

			It("should log visible files which cannot be selected yet.", func() {
				touch(dir, "c.csv")
				w.SetBirthTime(func(path string) (time.Time, error) {
					return time.Time{}, os.ErrNotExist
				})

				_, err = w.WaitForDownload(ctx, dir, before, 300*time.Millisecond)
				var timeoutErr *ErrTimeout
				Expect(errors.As(err, &timeoutErr)).To(BeTrue(), "%v", err)

				Expect(logs.FilterMessage("Still waiting for download.").All()).To(BeEmpty())

				progress := logs.FilterMessage("New files visible.").All()
				Expect(progress).NotTo(BeEmpty())
				for i := range progress {
					polls := progress[i].ContextMap()["polls"]
					Expect(polls.(int64) % int64(cfg.ProgressEvery)).To(BeZero())
				}
			})
		})
	})
})

func TestDlwatch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Download Watcher Suite")
}
