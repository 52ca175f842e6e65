// Package cli implements zfiscal's command-line subcommands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/zarlcorp/core/pkg/zcrypto"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"golang.org/x/term"

	"github.com/zarlcorp/zfiscal/internal/config"
	"github.com/zarlcorp/zfiscal/internal/fiscalcode"
	"github.com/zarlcorp/zfiscal/internal/identity"
)

// dateLayout is the accepted --dob format.
const dateLayout = "2006-01-02"

// maxCount caps identity --count.
const maxCount = 1000

// ErrUsage marks bad command-line input.
var ErrUsage = errors.New("usage")

// DataDir returns the default data directory for zfiscal.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zfiscal"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zfiscal"
	}
	return home + "/.local/share/zfiscal"
}

// LoadConfig reads the config file from its default location.
func LoadConfig() (*config.Config, error) {
	return config.Load(config.Path())
}

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) ([]byte, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return b, nil
}

// ReadNewPassword prompts for a new password with confirmation.
func ReadNewPassword(w io.Writer) ([]byte, error) {
	pass, err := ReadPassword("master password: ", w)
	if err != nil {
		return nil, err
	}
	confirm, err := ReadPassword("confirm password: ", w)
	defer zcrypto.Erase(confirm)
	if err != nil {
		zcrypto.Erase(pass)
		return nil, err
	}
	if string(pass) != string(confirm) {
		zcrypto.Erase(pass)
		return nil, fmt.Errorf("passwords do not match")
	}
	return pass, nil
}

// IsFirstRun checks whether the store has been initialized.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "salt"))
	return err != nil
}

// OpenStore prompts for a password and opens the store, returning both the
// store and an identities collection.
func OpenStore(dir string) (*zstore.Store, *zstore.Collection[identity.Identity], error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	var pass []byte
	var err error
	if IsFirstRun(dir) {
		pass, err = ReadNewPassword(os.Stderr)
	} else {
		pass, err = ReadPassword("master password: ", os.Stderr)
	}
	if err != nil {
		return nil, nil, err
	}
	defer zcrypto.Erase(pass)

	return openCollection(zfilesystem.NewOSFileSystem(dir), pass)
}

func openCollection(fsys zfilesystem.ReadWriteFileFS, pass []byte) (*zstore.Store, *zstore.Collection[identity.Identity], error) {
	s, err := zstore.Open(fsys, pass)
	if err != nil {
		return nil, nil, err
	}

	col, err := zstore.NewCollection[identity.Identity](s, "identities")
	if err != nil {
		s.Close()
		return nil, nil, err
	}

	return s, col, nil
}

// CmdCode computes the fiscal code for specific attributes.
func CmdCode(w io.Writer, cfg *config.Config, args []string) error {
	given, _ := flagValue(args, "--given")
	family, _ := flagValue(args, "--family")
	sexArg, _ := flagValue(args, "--sex")
	dobArg, _ := flagValue(args, "--dob")
	placeArg, _ := flagValue(args, "--place")

	if given == "" || family == "" || sexArg == "" || dobArg == "" || placeArg == "" {
		return fmt.Errorf("%w: zfiscal code --given NAME --family NAME --sex M|F --dob YYYY-MM-DD --place CODE|PROVINCE", ErrUsage)
	}

	if err := identity.ValidateName(given); err != nil {
		return fmt.Errorf("given name: %w", err)
	}
	if err := identity.ValidateName(family); err != nil {
		return fmt.Errorf("family name: %w", err)
	}

	sex, err := fiscalcode.ParseSex(sexArg)
	if err != nil {
		return err
	}

	dob, err := time.Parse(dateLayout, dobArg)
	if err != nil {
		return fmt.Errorf("%w: --dob must be YYYY-MM-DD: %v", ErrUsage, err)
	}

	tbl, err := cfg.Places()
	if err != nil {
		return err
	}
	place, err := tbl.Resolve(placeArg)
	if err != nil {
		return err
	}

	opts := cfg.EncoderOptions()
	if hasFlag(args, "--legacy") {
		opts = fiscalcode.Legacy()
	}
	g := identity.New(identity.WithEncoder(fiscalcode.New(opts)))
	id := g.Build(given, family, sex, dob, place)

	if hasFlag(args, "--json") {
		return printJSON(w, id)
	}
	fmt.Fprintln(w, id.Code)
	return nil
}

// CmdIdentity generates and prints random identities, optionally saving
// them to the encrypted store.
func CmdIdentity(w io.Writer, cfg *config.Config, args []string) error {
	ids, err := generateIdentities(cfg, args)
	if err != nil {
		return err
	}

	if hasFlag(args, "--json") {
		if len(ids) == 1 {
			err = printJSON(w, ids[0])
		} else {
			err = printJSON(w, ids)
		}
		if err != nil {
			return err
		}
	} else {
		for i, id := range ids {
			if i > 0 {
				fmt.Fprintln(w)
			}
			printIdentity(w, id)
		}
	}

	if !hasFlag(args, "--save") {
		return nil
	}

	s, col, err := OpenStore(DataDir())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := saveIdentities(col, ids); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "saved")
	return nil
}

func generateIdentities(cfg *config.Config, args []string) ([]identity.Identity, error) {
	count := 1
	if v, ok := flagValue(args, "--count"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxCount {
			return nil, fmt.Errorf("%w: --count must be between 1 and %d", ErrUsage, maxCount)
		}
		count = n
	}

	var sex *fiscalcode.Sex
	if v, ok := flagValue(args, "--sex"); ok {
		s, err := fiscalcode.ParseSex(v)
		if err != nil {
			return nil, err
		}
		sex = &s
	}

	g, err := cfg.Generator()
	if err != nil {
		return nil, err
	}

	ids := make([]identity.Identity, 0, count)
	for range count {
		if sex != nil {
			ids = append(ids, g.GenerateSex(*sex))
		} else {
			ids = append(ids, g.Generate())
		}
	}
	return ids, nil
}

type identityPutter interface {
	Put(key string, v identity.Identity) error
}

func saveIdentities(col identityPutter, ids []identity.Identity) error {
	for _, id := range ids {
		if err := col.Put(id.ID, id); err != nil {
			return fmt.Errorf("save %s: %w", id.ID, err)
		}
	}
	return nil
}

// CmdList lists all saved identities.
func CmdList(w io.Writer, args []string) error {
	s, col, err := OpenStore(DataDir())
	if err != nil {
		return err
	}
	defer s.Close()

	return listIdentities(w, col, hasFlag(args, "--json"))
}

type identityLister interface {
	List() ([]identity.Identity, error)
}

func listIdentities(w io.Writer, col identityLister, asJSON bool) error {
	ids, err := col.List()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].CreatedAt.After(ids[j].CreatedAt)
	})

	if len(ids) == 0 {
		fmt.Fprintln(w, "no saved identities")
		return nil
	}

	if asJSON {
		return printJSON(w, ids)
	}

	for _, id := range ids {
		fmt.Fprintf(w, "  %-10s %-24s %-18s %s\n",
			id.ID,
			id.FullName(),
			id.Code,
			id.CreatedAt.Format(dateLayout),
		)
	}
	return nil
}

// CmdForget deletes a saved identity by ID.
func CmdForget(w io.Writer, id string) error {
	s, col, err := OpenStore(DataDir())
	if err != nil {
		return err
	}
	defer s.Close()

	return forgetIdentity(w, col, id)
}

type identityDeleter interface {
	Delete(key string) error
}

func forgetIdentity(w io.Writer, col identityDeleter, id string) error {
	if err := col.Delete(id); err != nil {
		return fmt.Errorf("forget: %w", err)
	}
	fmt.Fprintf(w, "deleted %s\n", id)
	return nil
}

// CmdPlaces prints the place table.
func CmdPlaces(w io.Writer, cfg *config.Config, args []string) error {
	tbl, err := cfg.Places()
	if err != nil {
		return err
	}

	all := tbl.All()
	if hasFlag(args, "--json") {
		return printJSON(w, all)
	}

	for _, p := range all {
		fmt.Fprintf(w, "  %-5s %-3s %-13s %s\n", p.Code, p.Province, p.Kind, p.Name)
	}
	return nil
}

func printIdentity(w io.Writer, id identity.Identity) {
	fmt.Fprintf(w, "  id:       %s\n", id.ID)
	fmt.Fprintf(w, "  name:     %s\n", id.FullName())
	fmt.Fprintf(w, "  sex:      %s\n", id.Sex)
	fmt.Fprintf(w, "  dob:      %s\n", id.DOB.Format(dateLayout))
	fmt.Fprintf(w, "  place:    %s\n", placeLabel(id))
	fmt.Fprintf(w, "  code:     %s\n", id.Code)
}

func placeLabel(id identity.Identity) string {
	switch {
	case id.PlaceName == "":
		return id.PlaceCode
	case id.Province == "":
		return fmt.Sprintf("%s (%s)", id.PlaceName, id.PlaceCode)
	}
	return fmt.Sprintf("%s %s (%s)", id.PlaceName, id.Province, id.PlaceCode)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

// flagValue returns the value of "--flag value" or "--flag=value".
func flagValue(args []string, flag string) (string, bool) {
	for i, a := range args {
		if strings.EqualFold(a, flag) {
			if i+1 < len(args) {
				return args[i+1], true
			}
			return "", false
		}
		if k, v, ok := strings.Cut(a, "="); ok && strings.EqualFold(k, flag) {
			return v, true
		}
	}
	return "", false
}
