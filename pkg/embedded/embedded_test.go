package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/levels.yaml": {Data: []byte("levels: []\n")},
		"data/app.yaml":    {Data: []byte("tps: 60\n")},
	}
}

func TestIsInitialized(t *testing.T) {
	initialized = false
	if IsInitialized() {
		t.Error("Init() 之前 IsInitialized() 应返回 false")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Init() 之后 IsInitialized() 应返回 true")
	}

	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) 后应视为未初始化")
	}
}

func TestNotInitialized(t *testing.T) {
	initialized = false

	if _, err := Open("data/levels.yaml"); err != errNotInitialized {
		t.Errorf("Open 错误 = %v, 期望 %v", err, errNotInitialized)
	}
	if _, err := ReadFile("data/levels.yaml"); err != errNotInitialized {
		t.Errorf("ReadFile 错误 = %v, 期望 %v", err, errNotInitialized)
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"正常路径", "data/levels.yaml", "levels: []\n", false},
		{"./ 前缀", "./data/app.yaml", "tps: 60\n", false},
		{"未知前缀", "assets/levels.yaml", "", true},
		{"文件不存在", "data/missing.yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) 错误 = %v, 期望错误 %v", tt.path, err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, 期望 %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExists(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	if !Exists("data/levels.yaml") {
		t.Error("data/levels.yaml 应存在")
	}
	if Exists("data/nope.yaml") {
		t.Error("data/nope.yaml 不应存在")
	}
}
