package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/tvcs/pkg/objects"
)

func newShowObjectCmd(s *settings) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:     "show-object <type> <object> | -p <object>",
		Aliases: []string{"cat-file"},
		Short:   "Print the payload of a stored object",
		Long: `Print the payload of an object exactly as stored. <object> is a full key
or an unambiguous prefix of at least four hex characters. When <type> is
a tag's target type the tag is followed. With -p the type is optional
and trees are listed one entry per line.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if pretty {
				return cobra.RangeArgs(1, 2)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				expected objects.ObjectType
				name     = args[len(args)-1]
			)
			if len(args) == 2 {
				t, err := objects.ParseObjectType(args[0])
				if err != nil {
					return err
				}
				expected = t
			}

			st, err := openStore(s)
			if err != nil {
				return err
			}

			key, err := st.Resolve(name, expected, true)
			if err != nil {
				return err
			}

			obj, err := st.Get(key)
			if err != nil {
				return err
			}

			if pretty {
				return printPretty(cmd.OutOrStdout(), obj)
			}
			return printPayload(cmd.OutOrStdout(), obj)
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Pretty-print the object based on its type")

	return cmd
}

// printPayload writes the payload bytes with nothing added.
func printPayload(w io.Writer, obj objects.Object) error {
	payload, err := obj.Serialize()
	if err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// printPretty lists tree entries as "<mode> <type> <key>\t<name>" and
// prints every other type as its payload.
func printPretty(w io.Writer, obj objects.Object) error {
	tree, ok := obj.(*objects.Tree)
	if !ok {
		return printPayload(w, obj)
	}

	for _, e := range tree.Entries() {
		if _, err := fmt.Fprintf(w, "%s %s %s\t%s\n",
			e.Mode().ToOctalString(), e.Mode().ObjectType(), e.Hash(), e.Name()); err != nil {
			return err
		}
	}
	return nil
}
