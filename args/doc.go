// Package args is a minimalist command line argument parser.
//
// A Parser holds the raw arguments and a registry of declared options. Options
// are declared once per field of an options struct and resolve lazily on first
// read: an alias in the raw args wins, then the configured environment variable,
// then a default. Anything else is a MissingOptionError unless the option was
// made Optional.
//
//	type Opts struct {
//		Foo  *args.Option[string]
//		Port *args.Option[int]
//		Dry  *args.Option[bool]
//	}
//
//	p := args.New(os.Args[1:], args.WithName("tool"), args.WithExitOnMissing())
//	opts := Opts{
//		Foo:  args.Must(p.Option(args.Names("--foo", "-f"), args.Usage("the foo"))),
//		Port: args.Must(args.OptionOf(p, args.Names("--port"), args.Int(), args.EnvVar("PORT"))).DefaultValue(8080),
//		Dry:  args.Must(p.Flag(args.Names("--dry-run", "-n"))),
//	}
//	if err := p.Validate(); err != nil {
//		fmt.Println(err)
//		fmt.Println(p.Help())
//	}
//	foo := opts.Foo.MustGet()
//
// Enumerated declares mutually exclusive aliases that each select a value.
// Validate reports unknown flag-like tokens first, then required options not
// present in the raw args. Every failure is an *Error whose Kind matches one of
// the Err* sentinels through errors.Is.
//
// Error kinds:
//   - ErrDuplicateOption, ErrInvalidDefinition: registration.
//   - ErrAmbiguousOption, ErrMissingValue, ErrDanglingOption, ErrMissingOption, ErrConversion: resolution.
//   - ErrUninitializedParser, ErrUnknownArgument, ErrMissingArgument: Validate.
package args
