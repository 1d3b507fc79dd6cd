package main

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/tvcs/cmd/ui"
	"github.com/utkarsh5026/tvcs/pkg/objects"
	"github.com/utkarsh5026/tvcs/pkg/store"
)

type objectRow struct {
	key    objects.ObjectHash
	header objects.Header
}

func newListObjectsCmd(s *settings) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "list-objects",
		Short: "List stored objects with their type and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter objects.ObjectType
			if typeName != "" {
				t, err := objects.ParseObjectType(typeName)
				if err != nil {
					return err
				}
				filter = t
			}

			st, err := openStore(s)
			if err != nil {
				return err
			}

			rows, err := collectObjects(st)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			table := tablewriter.NewWriter(out)
			table.Header("Key", "Type", "Size")

			shown := 0
			for _, r := range rows {
				if filter != "" && r.header.Type != filter {
					continue
				}
				if err := table.Append(r.key.String(), ui.TypeLabel(r.header.Type.String()), strconv.FormatInt(r.header.Size, 10)); err != nil {
					return err
				}
				shown++
			}

			if shown == 0 {
				fmt.Fprintln(out, ui.WarningMessage("no objects stored"))
				return nil
			}

			if err := table.Render(); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.InfoMessage(fmt.Sprintf("%d object(s)", shown)))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "Only list objects of this type")

	return cmd
}

// collectObjects reads every object header, several at a time, and returns
// the rows in key order.
func collectObjects(st *store.FileObjectStore) ([]objectRow, error) {
	var keys []objects.ObjectHash
	if err := st.Walk(func(k objects.ObjectHash) error {
		keys = append(keys, k)
		return nil
	}); err != nil {
		return nil, err
	}

	rows := make([]objectRow, len(keys))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, k := range keys {
		g.Go(func() error {
			h, err := st.ReadHeader(k)
			if err != nil {
				return err
			}
			rows[i] = objectRow{key: k, header: h}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
