package args

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlag(t *testing.T) {
	cases := []struct {
		name     string
		raw      []string
		env      EnvMap
		expected bool
	}{
		{name: "absent", raw: []string{"--baz", "4"}, expected: false},
		{name: "present last", raw: []string{"--baz", "4", "--flag"}, expected: true},
		{name: "present with trailing token", raw: []string{"--flag", "value"}, expected: true},
		{name: "short alias", raw: []string{"-F"}, expected: true},
		{name: "env true", env: EnvMap{"FLAG": "yes"}, expected: true},
		{name: "env false", env: EnvMap{"FLAG": "off"}, expected: false},
		{name: "env empty", env: EnvMap{"FLAG": ""}, expected: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := New(tc.raw, WithEnvironment(tc.env))
			flag := Must(p.Flag(Names("--flag", "-F"), EnvVar("FLAG")))
			Must(p.Option(Names("--baz")))

			got, err := flag.Get()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFlagDoesNotConsumeFollowingToken(t *testing.T) {
	p := New([]string{"--flag", "--foo", "bar"}, WithEnvironment(EnvMap{}))
	flag := Must(p.Flag(Names("--flag")))
	foo := Must(p.Option(Names("--foo")))

	assert.True(t, flag.MustGet())
	assert.Equal(t, "bar", foo.MustGet())
}

func TestFlagSpecifiedTwice(t *testing.T) {
	p := New([]string{"-v", "--verbose"}, WithEnvironment(EnvMap{}))
	verbose := Must(p.Flag(Names("--verbose", "-v")))

	_, err := verbose.Get()
	assert.True(t, errors.Is(err, ErrAmbiguousOption))
}

func TestEnvFallback(t *testing.T) {
	env := EnvMap{"TEST_BINARY": "src/test/bin"}

	opts := newTestOpts(t, env, "--baz", "4")
	assert.Equal(t, "src/test/bin", opts.bin.MustGet())

	opts = newTestOpts(t, env, "--baz", "4", "--bin", "bin")
	assert.Equal(t, "bin", opts.bin.MustGet(), "args win over env")
}

func TestEnvFallbackConverts(t *testing.T) {
	opts := newTestOpts(t, EnvMap{"SOME_RANDOM_ENV_VAR": "12"})
	assert.Equal(t, 12, opts.baz.MustGet())

	opts = newTestOpts(t, EnvMap{"SOME_RANDOM_ENV_VAR": "twelve"})
	_, err := opts.baz.Get()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConversion))
	assert.True(t, errors.Is(err, strconv.ErrSyntax))
}

func TestEnvEmptyValueIsIgnored(t *testing.T) {
	opts := newTestOpts(t, EnvMap{"TEST_BINARY": ""})
	_, err := opts.bin.Get()
	assert.True(t, errors.Is(err, ErrMissingOption))
}

func TestMissingValue(t *testing.T) {
	opts := newTestOpts(t, nil, "--baz")
	_, err := opts.baz.Get()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingValue))
	assert.Equal(t, "Option --baz has no argument", err.Error())
}

func TestMissingValueWithTrailingFlag(t *testing.T) {
	opts := newTestOpts(t, nil, "--baz", "--flag")
	_, err := opts.baz.Get()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDanglingOption))
	assert.Equal(t, "Option --baz expects a value, but found opt '--flag'", err.Error())
}

func TestDanglingChecksOptionsRegisteredLater(t *testing.T) {
	p := New([]string{"--name", "-x"}, WithEnvironment(EnvMap{}))
	name := Must(p.Option(Names("--name")))
	Must(p.Flag(Names("-x")))

	_, err := name.Get()
	assert.True(t, errors.Is(err, ErrDanglingOption))
}

func TestUnregisteredDashValueIsAccepted(t *testing.T) {
	p := New([]string{"--offset", "-5"}, WithEnvironment(EnvMap{}))
	offset := Must(OptionOf(p, Names("--offset"), Int()))
	assert.Equal(t, -5, offset.MustGet())
}

func TestConversionError(t *testing.T) {
	opts := newTestOpts(t, nil, "--baz", "four")
	_, err := opts.baz.Get()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConversion))
	assert.Equal(t, `option --baz: cannot convert "four": strconv.Atoi: parsing "four": invalid syntax`, err.Error())

	var argErr *Error
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, []string{"four"}, argErr.Tokens)
}

func TestMissingOption(t *testing.T) {
	opts := newTestOpts(t, nil)
	_, err := opts.foo.Get()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingOption))
	assert.Equal(t, "could not find [--foo, -f] in args", err.Error())

	v, ok, err := opts.foo.Lookup()
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestMustGetPanicsWithoutExitPolicy(t *testing.T) {
	opts := newTestOpts(t, nil)
	assert.Panics(t, func() { opts.foo.MustGet() })
}

func TestAmbiguousOption(t *testing.T) {
	opts := newTestOpts(t, nil, "--foo", "a", "-f", "b")
	_, err := opts.foo.Get()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguousOption))
	assert.Equal(t, "option [--foo, -f] specified more than once", err.Error())
}

func TestOptional(t *testing.T) {
	p := New(nil, WithEnvironment(EnvMap{}))
	name := Must(p.Option(Names("--name"))).Optional()
	port := Must(OptionOf(p, Names("--port"), Int())).Optional()

	v, ok, err := name.Lookup()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", v)

	n, err := port.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	boxed, ok, err := port.Any()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, boxed)
}

func TestDefaultOnlyEvaluatedWhenAbsent(t *testing.T) {
	calls := 0
	supplier := func() string {
		calls++
		return "fallback"
	}

	p := New([]string{"--name", "given"}, WithEnvironment(EnvMap{}))
	name := Must(p.Option(Names("--name"))).Default(supplier)
	assert.Equal(t, "given", name.MustGet())

	p = New(nil, WithEnvironment(EnvMap{"NAME": "from-env"}))
	name = Must(p.Option(Names("--name"), EnvVar("NAME"))).Default(supplier)
	assert.Equal(t, "from-env", name.MustGet())
	assert.Equal(t, 0, calls)

	p = New(nil, WithEnvironment(EnvMap{}))
	name = Must(p.Option(Names("--name"))).Default(supplier)
	assert.Equal(t, "fallback", name.MustGet())
	assert.Equal(t, "fallback", name.MustGet())
	assert.Equal(t, 1, calls)
	assert.True(t, name.AllowsMissing())
}

func TestDefaultValueIsCopied(t *testing.T) {
	tags := map[string]string{"env": "dev"}

	p := New(nil, WithEnvironment(EnvMap{}))
	opt := Must(OptionOf(p, Names("--tags"), func(string) (map[string]string, error) {
		return nil, nil
	})).DefaultValue(tags)
	tags["env"] = "prod"

	assert.Equal(t, map[string]string{"env": "dev"}, opt.MustGet())
}

func TestResolutionIsCached(t *testing.T) {
	calls := 0
	p := New([]string{"--n", "7"}, WithEnvironment(EnvMap{}))
	n := Must(OptionOf(p, Names("--n"), func(raw string) (int, error) {
		calls++
		return strconv.Atoi(raw)
	}))

	for i := 0; i < 3; i++ {
		assert.Equal(t, 7, n.MustGet())
	}
	assert.Equal(t, 1, calls)
}

func TestEnumerated(t *testing.T) {
	type mode int
	const (
		first mode = iota + 1
		second
	)
	choices := []Choice[mode]{
		{Name: "--required1", Value: first},
		{Name: "--required2", Value: second},
	}

	t.Run("selects mapped value", func(t *testing.T) {
		p := New([]string{"--required2"}, WithEnvironment(EnvMap{}))
		m := Must(Enumerated(p, choices, Usage("mode")))
		assert.Equal(t, second, m.MustGet())
		assert.True(t, m.IsFlag())
	})

	t.Run("does not consume following token", func(t *testing.T) {
		p := New([]string{"--required1", "--name", "x"}, WithEnvironment(EnvMap{}))
		m := Must(Enumerated(p, choices))
		name := Must(p.Option(Names("--name")))
		assert.Equal(t, first, m.MustGet())
		assert.Equal(t, "x", name.MustGet())
	})

	t.Run("ambiguous", func(t *testing.T) {
		p := New([]string{"--required1", "--required2"}, WithEnvironment(EnvMap{}))
		m := Must(Enumerated(p, choices))
		_, err := m.Get()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrAmbiguousOption))
		assert.Equal(t, "option [--required1, --required2] specified more than once", err.Error())
	})

	t.Run("missing", func(t *testing.T) {
		p := New(nil, WithEnvironment(EnvMap{}))
		m := Must(Enumerated(p, choices))
		_, err := m.Get()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingOption))
		assert.Equal(t, "could not find [--required1, --required2] in args", err.Error())
	})

	t.Run("default", func(t *testing.T) {
		p := New(nil, WithEnvironment(EnvMap{}))
		m := Must(Enumerated(p, choices)).DefaultValue(second)
		assert.Equal(t, second, m.MustGet())
	})

	t.Run("env", func(t *testing.T) {
		p := New(nil, WithEnvironment(EnvMap{"MODE": "required1"}))
		m := Must(Enumerated(p, choices, EnvVar("MODE")))
		assert.Equal(t, first, m.MustGet())

		p = New(nil, WithEnvironment(EnvMap{"MODE": "--required2"}))
		m = Must(Enumerated(p, choices, EnvVar("MODE")))
		assert.Equal(t, second, m.MustGet())

		p = New(nil, WithEnvironment(EnvMap{"MODE": "third"}))
		m = Must(Enumerated(p, choices, EnvVar("MODE")))
		_, err := m.Get()
		assert.True(t, errors.Is(err, ErrConversion))
	})

	t.Run("duplicate values", func(t *testing.T) {
		p := New(nil, WithEnvironment(EnvMap{}))
		_, err := Enumerated(p, []Choice[mode]{
			{Name: "--a", Value: first},
			{Name: "--b", Value: first},
			{Name: "--c", Value: second},
		})
		assert.True(t, errors.Is(err, ErrInvalidDefinition))
		assert.Equal(t, "invalid option [--a, --b, --c]: --a and --b select the same value", err.Error())
		assert.Empty(t, p.Definitions())
	})

	t.Run("duplicate alias with other option", func(t *testing.T) {
		p := New(nil, WithEnvironment(EnvMap{}))
		Must(p.Flag(Names("--required2")))
		_, err := Enumerated(p, choices)
		assert.True(t, errors.Is(err, ErrDuplicateOption))
		_, ok := p.Lookup("--required1")
		assert.False(t, ok)
	})
}

var _ Definition = (*Option[string])(nil)

func TestAllowsMissing(t *testing.T) {
	p := New(nil, WithEnvironment(EnvMap{}))
	required := Must(p.Option(Names("--required")))
	optional := Must(p.Option(Names("--optional"))).Optional()
	defaulted := Must(OptionOf(p, Names("--n"), Int())).DefaultValue(3)
	flag := Must(p.Flag(Names("--flag")))

	assert.False(t, required.AllowsMissing())
	assert.True(t, optional.AllowsMissing())
	assert.True(t, defaulted.AllowsMissing())
	assert.True(t, flag.AllowsMissing())

	var allowed []string
	for _, d := range p.Definitions() {
		if d.AllowsMissing() {
			allowed = append(allowed, d.Names()[0])
		}
	}
	assert.Equal(t, []string{"--optional", "--n", "--flag"}, allowed)
}
