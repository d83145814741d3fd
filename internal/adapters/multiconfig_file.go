package adapters

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const microblazeRequire = "\nrequire conf/machine/include/xilinx-microblaze.inc\n"

type multiconfigConf struct {
	DTFile    string
	CPUName   string
	Tune      string
	Unit      string
	Distro    string
	ExtraConf string
}

// render produces the BitBake multiconfig fragment. Linux units only carry
// the device tree and TMPDIR.
func (c multiconfigConf) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CONFIG_DTFILE = \"%s\"\n", c.DTFile)
	if c.CPUName != "" {
		fmt.Fprintf(&b, "ESW_MACHINE = \"%s\"\n", c.CPUName)
	}
	if c.Tune != "" {
		fmt.Fprintf(&b, "DEFAULTTUNE = \"%s\"\n", c.Tune)
	}
	fmt.Fprintf(&b, "TMPDIR = \"${BASE_TMPDIR}/tmp-%s\"\n", c.Unit)
	if c.Distro != "" {
		fmt.Fprintf(&b, "DISTRO = \"%s\"\n", c.Distro)
	}
	b.WriteString(c.ExtraConf)
	return b.String()
}

func writeTextFile(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create directory for " + path).
			WithCause(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + path).
			WithCause(err)
	}
	return nil
}

// moveIfExists renames src to dst and reports whether src was present.
func moveIfExists(src string, dst string) (bool, error) {
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create directory for " + dst).
			WithCause(err)
	}
	if err := os.Rename(src, dst); err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to move " + src).
			WithCause(err)
	}
	return true, nil
}

func replaceInFile(path string, search string, replace string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read " + path).
			WithCause(err)
	}
	return writeTextFile(path, strings.ReplaceAll(string(content), search, replace))
}
