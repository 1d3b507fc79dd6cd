package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/tvcs/pkg/common/logger"
	"github.com/utkarsh5026/tvcs/pkg/objects"
	"github.com/utkarsh5026/tvcs/pkg/store"
)

func newHashObjectCmd(s *settings) *cobra.Command {
	var (
		typeName string
		write    bool
		stdin    bool
	)

	cmd := &cobra.Command{
		Use:   "hash-object [-t type] [-w] (--stdin | <file>...)",
		Short: "Compute object keys and optionally store the objects",
		Long: `Compute the key of each file as an object of the given type and print
one key per line, in argument order. With -w the objects are written to
the repository. Files other than blobs must hold a valid payload for
their type.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stdin == (len(args) > 0) {
				return invalidInput("hash-object", "provide either --stdin or at least one file")
			}

			t, err := objects.ParseObjectType(typeName)
			if err != nil {
				return err
			}

			var st *store.FileObjectStore
			if write {
				if st, err = openStore(s); err != nil {
					return err
				}
			}

			var keys []objects.ObjectHash
			if stdin {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				key, err := hashBytes(st, t, data, write)
				if err != nil {
					return err
				}
				keys = append(keys, key)
			} else {
				if keys, err = hashFiles(s, st, t, args, write); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, key := range keys {
				fmt.Fprintln(out, key)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", string(objects.BlobType), "Object type (blob, tree, commit, tag)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the objects into the repository")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "Read the object from standard input")

	return cmd
}

// hashFiles hashes every file concurrently. Keys come back in argument order.
// Distinct objects land on distinct paths and identical ones converge, so
// parallel writes are safe.
func hashFiles(s *settings, st *store.FileObjectStore, t objects.ObjectType, paths []string, write bool) ([]objects.ObjectHash, error) {
	keys := make([]objects.ObjectHash, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, p := range paths {
		g.Go(func() error {
			path, err := s.resolvePath(p)
			if err != nil {
				return err
			}

			// Symlinks are followed, as git does for paths given on the command line.
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("cannot hash %s: %w", p, err)
			}
			if mode := objects.FromOSFileMode(info.Mode()); !mode.IsRegular() {
				return invalidInput("hash-object", "cannot hash %s: not a regular file (mode %s)", p, mode)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("cannot hash %s: %w", p, err)
			}

			key, err := hashBytes(st, t, data, write)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			keys[i] = key
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}

// hashBytes builds an object of type t from data and returns its key,
// persisting it through st when write is set.
func hashBytes(st *store.FileObjectStore, t objects.ObjectType, data []byte, write bool) (objects.ObjectHash, error) {
	obj, err := objects.Decode(t, data)
	if err != nil {
		return "", err
	}

	if st == nil {
		_, key, err := objects.Encode(obj)
		return key, err
	}

	key, err := st.Put(obj, write)
	if err != nil {
		return "", err
	}
	logger.Debug("hashed object", "key", key, "type", t, "size", len(data), "written", write)
	return key, nil
}
