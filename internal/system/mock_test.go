package system

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	securejoin "github.com/cyphar/filepath-securejoin"
)

func TestMockFS_ReadWriteFile(t *testing.T) {
	mockFS := NewMockFS()

	content := []byte("general: {}\n")
	if err := mockFS.WriteFile("/cfg/base.yml", content, 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	data, err := mockFS.ReadFile("/cfg/base.yml")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}

	if string(data) != "general: {}\n" {
		t.Errorf("ReadFile = %q, want %q", string(data), "general: {}\n")
	}
}

func TestMockFS_ReadFile_NotExists(t *testing.T) {
	mockFS := NewMockFS()

	_, err := mockFS.ReadFile("/nonexistent")
	if err != fs.ErrNotExist {
		t.Errorf("ReadFile error = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFS_ReadFile_Unreadable(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/secret.yml", []byte("x"), 0000)

	_, err := mockFS.ReadFile("/secret.yml")
	if err != fs.ErrPermission {
		t.Errorf("ReadFile error = %v, want fs.ErrPermission", err)
	}
}

func TestMockFS_Stat(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/test/file.txt", []byte("content"), 0644)
	mockFS.AddDir("/test/dir")

	info, err := mockFS.Stat("/test/file.txt")
	if err != nil {
		t.Fatalf("Stat file error: %v", err)
	}
	if info.IsDir() {
		t.Error("File should not be a directory")
	}
	if info.Name() != "file.txt" {
		t.Errorf("Name = %q, want %q", info.Name(), "file.txt")
	}

	info, err = mockFS.Stat("/test/dir")
	if err != nil {
		t.Fatalf("Stat dir error: %v", err)
	}
	if !info.IsDir() {
		t.Error("Dir should be a directory")
	}
}

func TestMockFS_IsFile(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/file.txt", []byte("x"), 0644)
	mockFS.AddDir("/dir")
	mockFS.AddSymlink("/link.txt", "/file.txt")

	if !mockFS.IsFile("/file.txt") {
		t.Error("/file.txt should be a file")
	}
	if mockFS.IsFile("/dir") {
		t.Error("/dir should not be a file")
	}
	if !mockFS.IsFile("/link.txt") {
		t.Error("/link.txt should resolve to a file")
	}
	if mockFS.IsFile("/nonexistent") {
		t.Error("/nonexistent should not be a file")
	}
}

func TestMockFS_Symlinks(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/plugins/real.yml", []byte("real"), 0644)
	mockFS.AddSymlink("/plugins/alias.yml", "real.yml")

	info, err := mockFS.Lstat("/plugins/alias.yml")
	if err != nil {
		t.Fatalf("Lstat error: %v", err)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		t.Error("Lstat should report a symlink")
	}

	target, err := mockFS.Readlink("/plugins/alias.yml")
	if err != nil {
		t.Fatalf("Readlink error: %v", err)
	}
	if target != "real.yml" {
		t.Errorf("Readlink = %q, want %q", target, "real.yml")
	}

	data, err := mockFS.ReadFile("/plugins/alias.yml")
	if err != nil {
		t.Fatalf("ReadFile through symlink error: %v", err)
	}
	if string(data) != "real" {
		t.Errorf("ReadFile = %q, want %q", data, "real")
	}

	if _, err := mockFS.Readlink("/plugins/real.yml"); err == nil {
		t.Error("Readlink on a regular file should fail")
	}
}

func TestMockFS_SecureJoinStaysInRoot(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddDir("/root/plugins")
	mockFS.AddSymlink("/root/plugins/escape", "/etc")

	got, err := securejoin.SecureJoinVFS("/root/plugins", "escape/passwd", mockFS)
	if err != nil {
		t.Fatalf("SecureJoinVFS error: %v", err)
	}
	if !strings.HasPrefix(got, "/root/plugins/") {
		t.Errorf("SecureJoinVFS = %q, escaped the root", got)
	}

	got, err = securejoin.SecureJoinVFS("/root/plugins", "../../etc/passwd", mockFS)
	if err != nil {
		t.Fatalf("SecureJoinVFS error: %v", err)
	}
	if got != "/root/plugins/etc/passwd" {
		t.Errorf("SecureJoinVFS = %q, want %q", got, "/root/plugins/etc/passwd")
	}
}

func TestMockFS_RemoveAll(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/dir/file1.txt", []byte("x"), 0644)
	mockFS.AddFile("/dir/file2.txt", []byte("y"), 0644)
	mockFS.AddDir("/dir/subdir")

	if err := mockFS.RemoveAll("/dir"); err != nil {
		t.Fatalf("RemoveAll error: %v", err)
	}

	if mockFS.Exists("/dir/file1.txt") {
		t.Error("File1 should be removed")
	}
	if mockFS.Exists("/dir/file2.txt") {
		t.Error("File2 should be removed")
	}
	if mockFS.Exists("/dir/subdir") {
		t.Error("Subdir should be removed")
	}
}

func TestMockFS_MkdirTemp(t *testing.T) {
	mockFS := NewMockFS()

	first, err := mockFS.MkdirTemp("/work", "edi-")
	if err != nil {
		t.Fatalf("MkdirTemp error: %v", err)
	}
	second, err := mockFS.MkdirTemp("/work", "edi-")
	if err != nil {
		t.Fatalf("MkdirTemp error: %v", err)
	}

	if first == second {
		t.Errorf("MkdirTemp returned %q twice", first)
	}
	if !strings.HasPrefix(first, "/work/edi-") {
		t.Errorf("MkdirTemp = %q, want prefix /work/edi-", first)
	}
	if !mockFS.Exists(first) {
		t.Error("temp dir should exist")
	}
}

func TestMockFS_ErrorInjection(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.ReadFileErr = fs.ErrPermission

	_, err := mockFS.ReadFile("/anything")
	if err != fs.ErrPermission {
		t.Errorf("ReadFile error = %v, want ErrPermission", err)
	}
}

func TestMockExecutor_ExecuteInteractive(t *testing.T) {
	exec := NewMockExecutor()

	err := exec.ExecuteInteractive(context.Background(), []string{"A=1"}, "ansible-playbook", "site.yml")
	if err != nil {
		t.Fatalf("ExecuteInteractive error: %v", err)
	}

	cmd, ok := exec.LastCommand()
	if !ok {
		t.Fatal("No command recorded")
	}
	if cmd.Name != "ansible-playbook" {
		t.Errorf("Command name = %q, want %q", cmd.Name, "ansible-playbook")
	}
	if len(cmd.Env) != 1 || cmd.Env[0] != "A=1" {
		t.Errorf("Env = %v, want [A=1]", cmd.Env)
	}
}

func TestMockExecutor_Errors(t *testing.T) {
	exec := NewMockExecutor()
	boom := errors.New("boom")
	exec.AddError("ansible-playbook", boom)
	exec.Missing["lxc"] = true

	if err := exec.ExecuteInteractive(context.Background(), nil, "ansible-playbook"); err != boom {
		t.Errorf("ExecuteInteractive error = %v, want %v", err, boom)
	}
	if _, err := exec.LookPath("lxc"); err == nil {
		t.Error("LookPath(lxc) should fail")
	}
	if path, err := exec.LookPath("ansible-playbook"); err != nil || path == "" {
		t.Errorf("LookPath(ansible-playbook) = %q, %v", path, err)
	}
}

func TestMockExecutor_Reset(t *testing.T) {
	exec := NewMockExecutor()
	exec.ExecuteInteractive(context.Background(), nil, "cmd1")
	exec.ExecuteInteractive(context.Background(), nil, "cmd2")

	if len(exec.Commands) != 2 {
		t.Errorf("Commands length = %d, want 2", len(exec.Commands))
	}

	exec.Reset()

	if len(exec.Commands) != 0 {
		t.Errorf("Commands length after reset = %d, want 0", len(exec.Commands))
	}
}

func TestMockHost(t *testing.T) {
	host := NewMockHost("alice", "buildbox")
	host.Env["http_proxy"] = "http://proxy:3128"

	if got := host.CurrentUser().Name; got != "alice" {
		t.Errorf("CurrentUser().Name = %q, want %q", got, "alice")
	}
	if got := host.Hostname(); got != "buildbox" {
		t.Errorf("Hostname() = %q, want %q", got, "buildbox")
	}
	if got := host.Getenv("http_proxy", ""); got != "http://proxy:3128" {
		t.Errorf("Getenv(http_proxy) = %q", got)
	}
	if got := host.Getenv("no_proxy", "fallback"); got != "fallback" {
		t.Errorf("Getenv(no_proxy) = %q, want fallback", got)
	}
}

func TestOSHost_GetenvFallback(t *testing.T) {
	t.Setenv("EDI_TEST_SET", "value")

	h := &osHost{}
	if got := h.Getenv("EDI_TEST_SET", "x"); got != "value" {
		t.Errorf("Getenv = %q, want %q", got, "value")
	}
	if got := h.Getenv("EDI_TEST_DEFINITELY_UNSET", "x"); got != "x" {
		t.Errorf("Getenv = %q, want %q", got, "x")
	}
}
