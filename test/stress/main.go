/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	c0 "github.com/dburkart/c0/api"
	"github.com/dburkart/c0/pkg/proto"
)

/*
 * This tests a compile service under many concurrent requests. Every request
 * compiles a unique program, so a response mixed up with another request's
 * shows up as a wrong listing.
 */

func main() {
	host := "c0://localhost:8001"
	if len(os.Args) > 1 {
		host = os.Args[1]
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := uuid.NewString()
			client, err := c0.NewClient(host)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}

			for i := 0; i < 1000; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					source := fmt.Sprintf("fn main() -> void { putstr(%q); putint(%d); }", id, i)
					program, err := client.Compile(context.Background(), proto.CompileRequest{Name: id, Source: source})
					if err != nil {
						fmt.Fprintln(os.Stderr, err)
						os.Exit(1)
					}

					body := program.Function("main").Body
					if body[0].Operand != id || body[2].Operand != uint64(i) {
						fmt.Fprintf(os.Stderr, "%s/%d: got a listing for another request\n", id, i)
						os.Exit(1)
					}
				}(i)
			}
		}()
	}

	wg.Wait()
}
