// Package main provides a command-line utility to inspect documents stored
// in files. It walks each top-level document and prints its elements,
// recursing into nested documents and arrays, and can validate key and
// string content instead of printing.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/scigolib/bsondoc"
	"github.com/scigolib/bsondoc/internal/core"
)

func main() {
	validate := flag.Bool("validate", false, "validate documents instead of printing them")
	utf8 := flag.Bool("utf8", true, "require valid UTF-8 in string payloads when validating")
	noDollar := flag.Bool("no-dollar-keys", false, "reject keys starting with $ when validating")
	noDotKeys := flag.Bool("no-dot-keys", false, "reject keys containing . when validating")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: bsondump [flags] <file.bson>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("failed to read file: %v", err)
	}

	var flags bsondoc.Flags
	if *utf8 {
		flags |= bsondoc.FlagUTF8
	}
	if *noDollar {
		flags |= bsondoc.FlagDollarKeys
	}
	if *noDotKeys {
		flags |= bsondoc.FlagDotKeys
	}

	offset := 0
	count := 0
	for offset < len(data) {
		length, ok := declaredLength(data[offset:])
		if !ok {
			log.Fatalf("document %d at offset %d: truncated or invalid length header", count, offset)
		}

		doc, err := bsondoc.NewFromBytes(data[offset : offset+length])
		if err != nil {
			log.Fatalf("document %d at offset %d: %v", count, offset, err)
		}

		if *validate {
			if at, clean := bsondoc.Validate(doc, flags); !clean {
				fmt.Printf("document %d: invalid at offset %d\n", count, at)
			} else {
				fmt.Printf("document %d: ok (%d bytes)\n", count, doc.Len())
			}
		} else {
			fmt.Printf("document %d (%d bytes):\n", count, doc.Len())
			it, err := bsondoc.NewIterator(doc)
			if err != nil {
				log.Fatalf("document %d: %v", count, err)
			}
			if err := dump(it, 1); err != nil {
				log.Fatalf("document %d: %v", count, err)
			}
		}

		offset += length
		count++
	}
}

// declaredLength reads the int32 length header a document starts with,
// so a file containing several concatenated documents can be split one
// at a time without re-scanning for a terminator.
func declaredLength(data []byte) (int, bool) {
	if len(data) < bsondoc.MinDocumentSize {
		return 0, false
	}
	length := int(uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24)
	if length < bsondoc.MinDocumentSize || length > len(data) {
		return 0, false
	}
	return length, true
}

func dump(it *bsondoc.Iterator, indent int) error {
	pad := strings.Repeat("  ", indent)
	for it.Advance() {
		fmt.Printf("%s%s: %s\n", pad, it.KeyString(), describe(it))
		if it.Type() == core.TypeDocument || it.Type() == core.TypeArray {
			nested, err := it.Recurse()
			if err != nil {
				return err
			}
			if err := dump(nested, indent+1); err != nil {
				return err
			}
		}
	}
	if off, isError := it.Err(); isError {
		return fmt.Errorf("corrupt at offset %d", off)
	}
	return nil
}

func describe(it *bsondoc.Iterator) string {
	switch it.Type() {
	case core.TypeDouble:
		return fmt.Sprintf("double %v", it.Double())
	case core.TypeUTF8:
		return fmt.Sprintf("utf8 %q", it.UTF8())
	case core.TypeDocument:
		return "document"
	case core.TypeArray:
		return "array"
	case core.TypeBinary:
		subtype, data := it.Binary()
		return fmt.Sprintf("binary subtype=0x%02x len=%d", byte(subtype), len(data))
	case core.TypeUndefined:
		return "undefined"
	case core.TypeOID:
		return fmt.Sprintf("oid %x", it.OID())
	case core.TypeBool:
		return fmt.Sprintf("bool %v", it.Bool())
	case core.TypeDateTime:
		return fmt.Sprintf("datetime %v", it.DateTime())
	case core.TypeNull:
		return "null"
	case core.TypeRegex:
		pattern, opts := it.Regex()
		return fmt.Sprintf("regex /%s/%s", pattern, opts)
	case core.TypeDBPointer:
		ns, id, _ := it.DBPointer()
		return fmt.Sprintf("dbpointer %s %x", ns, id)
	case core.TypeCode:
		return fmt.Sprintf("code %q", it.Code())
	case core.TypeSymbol:
		return fmt.Sprintf("symbol %q", it.Symbol())
	case core.TypeCodeWithScope:
		src, _, _ := it.CodeWithScope()
		return fmt.Sprintf("codewscope %q", src)
	case core.TypeInt32:
		return fmt.Sprintf("int32 %v", it.Int32())
	case core.TypeTimestamp:
		increment, seconds := it.Timestamp()
		return fmt.Sprintf("timestamp seconds=%d increment=%d", seconds, increment)
	case core.TypeInt64:
		return fmt.Sprintf("int64 %v", it.Int64())
	case core.TypeMinKey:
		return "minkey"
	case core.TypeMaxKey:
		return "maxkey"
	default:
		return "unknown"
	}
}
