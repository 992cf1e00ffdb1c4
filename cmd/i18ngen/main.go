// Command i18ngen turns the default locale catalog into typed translation keys,
// so descriptor builders cannot reference a key that does not exist.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var initialisms = map[string]string{
	"id":  "ID",
	"ip":  "IP",
	"api": "API",
	"url": "URL",
	"ico": "ICO",
	"p2p": "P2P",
	"kpi": "KPI",
	"sms": "SMS",
}

func main() {
	in := flag.String("in", "locales/en.yaml", "default locale catalog")
	out := flag.String("out", "internal/i18n/keys_gen.go", "generated Go file")
	pkg := flag.String("pkg", "i18n", "package name of the generated file")
	flag.Parse()

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read %s: %v", *in, err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		log.Fatalf("parse %s: %v", *in, err)
	}

	var keys []string
	flatten("", tree, &keys)
	sort.Strings(keys)

	names := make([]string, len(keys))
	seen := make(map[string]string, len(keys))
	for i, k := range keys {
		names[i] = constName(k)
		if prev, dup := seen[names[i]]; dup {
			log.Fatalf("keys %q and %q both map to %s", prev, k, names[i])
		}
		seen[names[i]] = k
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by i18ngen from %s. DO NOT EDIT.\n\n", *in)
	fmt.Fprintf(&buf, "package %s\n\nconst (\n", *pkg)
	for i, k := range keys {
		fmt.Fprintf(&buf, "\t%s Key = %q\n", names[i], k)
	}
	buf.WriteString(")\n\n// AllKeys lists every key declared by the default locale, sorted.\nvar AllKeys = []Key{\n")
	for _, n := range names {
		fmt.Fprintf(&buf, "\t%s,\n", n)
	}
	buf.WriteString("}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatalf("format generated source: %v", err)
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("wrote %d keys to %s", len(keys), *out)
}

func flatten(prefix string, node map[string]any, out *[]string) {
	for k, v := range node {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flatten(full, child, out)
			continue
		}
		*out = append(*out, full)
	}
}

func constName(key string) string {
	var b strings.Builder
	for _, seg := range strings.Split(key, ".") {
		for _, part := range strings.Split(seg, "_") {
			if part == "" {
				continue
			}
			if up, ok := initialisms[part]; ok {
				b.WriteString(up)
				continue
			}
			b.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}
	return b.String()
}
