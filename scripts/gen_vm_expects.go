// gen_vm_expects generates free-standing wrappers for each vmTestCase with*
// and expect* builder method that takes arguments, so that they may be passed
// around as func(vmTestCase) vmTestCase values.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout

	receiver  = flag.String("receiver", "vmTestCase", "builder type whose methods to wrap")
	formatter = flag.String("fmt", "goimports", "formatter command to pipe output through")
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		name := args[0]
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("failed to open %v: %v", name, err)
		}
		args = args[1:]
		in = f
	}

	if len(args) > 0 {
		name := args[0]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %v: %v", name, err)
		}
		out = f
	}
}

func main() {
	ctx := context.Background()
	parseFlags()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	ready := make(chan struct{})

	eg.Go(func() error {
		format := exec.CommandContext(ctx, *formatter)
		fmtPipe, err := format.StdinPipe()
		if err != nil {
			return err
		}

		defer out.Close()
		format.Stdout = out
		format.Stderr = os.Stderr

		out = fmtPipe

		close(ready)
		if err := format.Run(); err != nil {
			return fmt.Errorf("%v run failed: %w", *formatter, err)
		}
		return nil
	})

	eg.Go(func() (rerr error) {
		select {
		case <-ctx.Done():
		case <-ready:
		}

		defer func() {
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()

		return run(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

type builderMethod struct {
	base, what string
	params     [][]byte
}

func (bm builderMethod) writeTo(buf *bytes.Buffer, recv string) {
	fmt.Fprintf(buf, "func %sVM%s(%s) func(%s) %s {\n", bm.base, bm.what, bytes.Join(bm.params, []byte(", ")), recv, recv)
	fmt.Fprintf(buf, "\treturn func(vmt %s) %s {\n", recv, recv)
	fmt.Fprintf(buf, "\t\treturn vmt.%s%s(", bm.base, bm.what)
	for i, param := range bm.params {
		if i > 0 {
			buf.WriteString(", ")
		}
		fields := bytes.Fields(param)
		buf.Write(fields[0])
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			buf.WriteString("...")
		}
	}
	buf.WriteString(")\n\t}\n}\n\n")
}

func run(ctx context.Context) error {
	recv := regexp.QuoteMeta(*receiver)
	method := regexp.MustCompile(`^func \(vmt ` + recv + `\) (expect|with)(.+?)\((.+?)\) ` + recv + ` {`)

	var buf bytes.Buffer
	buf.Grow(1024)
	buf.WriteString("package main\n\n")

	buf.WriteString("// @generated from ")
	buf.WriteString(in.Name())
	buf.WriteString("\n\n")

	if args := flag.Args(); len(args) >= 2 {
		buf.WriteString("//go:generate go run scripts/gen_vm_expects.go --")
		for _, arg := range args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if match := method.FindSubmatch(sc.Bytes()); len(match) > 0 {
			bm := builderMethod{base: string(match[1]), what: string(match[2])}
			for _, param := range bytes.Split(match[3], []byte(",")) {
				bm.params = append(bm.params, bytes.TrimSpace(param))
			}
			bm.writeTo(&buf, *receiver)
		}

		if buf.Len() > 0 {
			if _, err := buf.WriteTo(out); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}
