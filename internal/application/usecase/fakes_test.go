package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/diillson/envcheck-reports/internal/domain/entity"
	"github.com/diillson/envcheck-reports/internal/shared/types"
)

type fakeStorage struct {
	buckets   map[string]bool
	rules     map[string][]entity.LifecycleRule
	objects   map[string][]byte
	headErr   error
	createErr error
	uploadErr error
	listErr   error
	puts      int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		buckets: map[string]bool{},
		rules:   map[string][]entity.LifecycleRule{},
		objects: map[string][]byte{},
	}
}

func (f *fakeStorage) BucketExists(_ context.Context, bucket string) (bool, error) {
	if f.headErr != nil {
		return false, f.headErr
	}
	return f.buckets[bucket], nil
}

func (f *fakeStorage) CreateBucket(_ context.Context, bucket string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.buckets[bucket] = true
	return nil
}

func (f *fakeStorage) GetLifecycleRules(_ context.Context, bucket string) ([]entity.LifecycleRule, error) {
	rules, ok := f.rules[bucket]
	if !ok {
		return nil, fmt.Errorf("NoSuchLifecycleConfiguration")
	}
	return rules, nil
}

func (f *fakeStorage) PutLifecycleRules(_ context.Context, bucket string, rules []entity.LifecycleRule) error {
	f.puts++
	f.rules[bucket] = rules
	return nil
}

func (f *fakeStorage) UploadStream(_ context.Context, bucket, key string, body io.ReadSeeker) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[bucket+"/"+key] = data
	return nil
}

func (f *fakeStorage) UploadFile(_ context.Context, bucket, key, path string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.objects[bucket+"/"+key] = []byte(path)
	return nil
}

func (f *fakeStorage) ListBuckets(_ context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var names []string
	for name := range f.buckets {
		names = append(names, name)
	}
	return names, nil
}

type fakeArchive struct {
	content []byte
	err     error
	calls   []string
}

func (f *fakeArchive) ZipByBaseName(dir, baseName string) (*bytes.Reader, error) {
	f.calls = append(f.calls, "base:"+dir+":"+baseName)
	return f.reader()
}

func (f *fakeArchive) ZipByNotebookPath(dir, notebookPath string) (*bytes.Reader, error) {
	f.calls = append(f.calls, "path:"+dir+":"+notebookPath)
	return f.reader()
}

func (f *fakeArchive) reader() (*bytes.Reader, error) {
	if f.err != nil || f.content == nil {
		return nil, f.err
	}
	return bytes.NewReader(f.content), nil
}

type fakeNotebook struct {
	path    string
	data    *entity.ExecutionData
	stamped map[string]string
}

func (f *fakeNotebook) FindByBaseName(_, _ string) (string, error) {
	return f.path, nil
}

func (f *fakeNotebook) ExecutionData(_ string) (*entity.ExecutionData, error) {
	return f.data, nil
}

func (f *fakeNotebook) StampS3Link(path, url string) error {
	if f.stamped == nil {
		f.stamped = map[string]string{}
	}
	f.stamped[path] = url
	return nil
}

type fakeMetrics struct {
	uploads   map[string]int
	lifecycle map[string]int
	records   map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{uploads: map[string]int{}, lifecycle: map[string]int{}, records: map[string]int{}}
}

func (f *fakeMetrics) ObserveUpload(kind, outcome string) { f.uploads[kind+"/"+outcome]++ }
func (f *fakeMetrics) ObserveLifecycle(action string)     { f.lifecycle[action]++ }
func (f *fakeMetrics) ObserveRecord(validation string)    { f.records[validation]++ }
func (f *fakeMetrics) Flush(string) error                 { return nil }

type fakeConsole struct {
	mu       sync.Mutex
	messages []string
}

func (c *fakeConsole) add(level, format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, level+": "+fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Print(a ...interface{})                 { c.add("print", "%s", fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(format string, a ...interface{}) { c.add("print", format, a...) }
func (c *fakeConsole) Println(a ...interface{})               { c.add("print", "%s", fmt.Sprint(a...)) }
func (c *fakeConsole) LogDebug(format string, a ...interface{}) {
	c.add("debug", format, a...)
}
func (c *fakeConsole) LogInfo(format string, a ...interface{})    { c.add("info", format, a...) }
func (c *fakeConsole) LogWarning(format string, a ...interface{}) { c.add("warning", format, a...) }
func (c *fakeConsole) LogError(format string, a ...interface{})   { c.add("error", format, a...) }
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) { c.add("success", format, a...) }
func (c *fakeConsole) Status(string) types.StatusHandle           { return noopStatus{} }
func (c *fakeConsole) CreateTable() types.TableInterface          { return &noopTable{} }

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop()         {}

type noopTable struct{}

func (*noopTable) AddColumn(string, ...interface{}) {}
func (*noopTable) AddRow(...interface{})            {}
func (*noopTable) Render() string                   { return "" }
