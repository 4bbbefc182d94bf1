package router

import (
	"fmt"
	"regexp"
	"strings"

	"Iron/modules/kit/errx"
)

const defaultWildcardName = "path"

// Pattern 是编译后的路径模板。
//
// 模板按 "/" 切段，每段是以下之一：
// - 字面量：大小写敏感的精确匹配
// - :name：匹配一个非空的单词字符段，绑定到 name
// - *name：只能出现在最后一段，贪婪匹配剩余路径（可为空，可含 "/"），绑定到 name；裸 "*" 绑定到 path
type Pattern struct {
	template string
	re       *regexp.Regexp
	names    []string
}

// CompilePattern 编译模板，整条路径锚定匹配。
func CompilePattern(template string) (*Pattern, error) {
	if !strings.HasPrefix(template, "/") {
		return nil, invalidPattern(template, "template must start with /")
	}

	segments := strings.Split(template, "/")
	parts := make([]string, len(segments))
	names := make([]string, 0, 2)
	seen := make(map[string]struct{}, 2)

	for i, seg := range segments {
		var name, expr string
		switch {
		case strings.HasPrefix(seg, ":"):
			name = seg[1:]
			expr = `(?P<%s>\w+)`
		case strings.HasPrefix(seg, "*"):
			if i != len(segments)-1 {
				return nil, invalidPattern(template, "wildcard must be the last segment")
			}
			name = seg[1:]
			if name == "" {
				name = defaultWildcardName
			}
			expr = `(?P<%s>.*)`
		default:
			parts[i] = regexp.QuoteMeta(seg)
			continue
		}

		if !isWordName(name) {
			return nil, invalidPattern(template, fmt.Sprintf("invalid capture name %q", name))
		}
		if _, dup := seen[name]; dup {
			return nil, invalidPattern(template, fmt.Sprintf("duplicate capture name %q", name))
		}
		seen[name] = struct{}{}
		names = append(names, name)
		parts[i] = fmt.Sprintf(expr, name)
	}

	re, err := regexp.Compile("^" + strings.Join(parts, "/") + "$")
	if err != nil {
		return nil, errx.ErrInvalidPattern.WithData("pattern", template).WithCause(err)
	}
	return &Pattern{template: template, re: re, names: names}, nil
}

// MustCompilePattern 编译失败直接 panic，用于注册期。
func MustCompilePattern(template string) *Pattern {
	p, err := CompilePattern(template)
	if err != nil {
		panic(err)
	}
	return p
}

func invalidPattern(template, reason string) error {
	return errx.ErrInvalidPattern.WithData("pattern", template).WithReason(reason)
}

func isWordName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		if !(c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

// Match 匹配成功时返回新的参数表（没有捕获时为空 map）。
func (p *Pattern) Match(path string) (map[string]string, bool) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	params := make(map[string]string, len(p.names))
	for i, name := range p.re.SubexpNames() {
		if name != "" {
			params[name] = m[i]
		}
	}
	return params, true
}

// Template 返回原始模板（分组路由包含前缀）。
func (p *Pattern) Template() string {
	return p.template
}

// Names 按出现顺序返回捕获名。
func (p *Pattern) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

func (p *Pattern) String() string {
	return p.re.String()
}
