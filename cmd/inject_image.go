// Copyright © 2019 Erin Shepherd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"bytes"
	"log"

	"github.com/erincandescent/unbit/ihex"
	"github.com/erincandescent/unbit/mmi"
	"github.com/erincandescent/unbit/xilinx"
	"github.com/spf13/cobra"
)

var injectImageCmd = &cobra.Command{
	Use:   "inject-image <in.rbd> <image.mmi> <image.ihx> <out.rbd>",
	Short: "Inject a processor software image into a readback capture's BRAMs",
	Long: `Reads an Intel-HEX software image and, using an MMI memory map to
locate the block RAM tiles and bit lanes backing the target processor's
memory, writes each byte of the image into the matching bits of a
readback capture's frame data.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		rbdData, err := readFile(args[0])
		if err != nil {
			return err
		}
		mm, err := mmi.Load(args[1])
		if err != nil {
			return err
		}
		hexData, err := readFile(args[2])
		if err != nil {
			return err
		}

		bs, err := xilinx.LoadReadback(rbdData)
		if err != nil {
			return err
		}
		if len(bs.SLRs()) == 0 {
			return xilinx.ErrUnsupportedBitstream
		}

		device, err := bs.DeviceForSLR(0)
		if err != nil {
			return err
		}
		fd, err := bs.FrameData(0)
		if err != nil {
			return err
		}
		mapper := mmi.NewMapper(device, mm)

		r := ihex.NewReader(bytes.NewReader(hexData))
		if err := r.ReadAll(func(block ihex.Block) error {
			log.Printf("injecting %d bytes at address %#x", len(block.Data), block.Address)
			return mapper.WriteImage(fd, uint64(block.Address), block.Data)
		}); err != nil {
			return err
		}

		return writeFile(args[3], bs.Bytes())
	},
}

func init() {
	rootCmd.AddCommand(injectImageCmd)
}
