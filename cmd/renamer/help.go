package main

const rootLongHelp = `Renames files using ordered regular-expression rules.

Without --do the planned renames are printed as "old -> new" and nothing on
disk changes. Paths default to the current directory; directories are read one
level deep unless -r is given.

Actions:
  d:regex          removes every match of regex
  r:regex:text     replaces every match of regex with text; \1 and \g<name>
                   refer to capture groups, '$' is literal
  i:position:text  inserts text at position; negative positions count from
                   the end, and "i:text" inserts at the start
  a:text           appends text to the name, before the extension

A literal ':' inside a field is written as '\:'. Rules run in order. When a
rule leaves a name unchanged the file is skipped, unless -p is given.

Keywords such as %res are replaced after all rules have run; see
"renamer keywords". Renames whose target already exists are never performed.`

const rootExample = `  Files:
    'dexter episode 1 [random crap].mp4'
    'dexter episode 2 [random crap].mp4'
    'dexter episode 3 [random crap].mp4'
    'other show episode 1.mp4'

  renamer -f 'dexter episode [0-9] \[.*\].mp4' -R 'Dexter E[0-9].mp4' \
          -a 'r:dexter episode ([0-9]) .*:Dexter E\1.mp4'

  Renamed files:
    'Dexter E1.mp4'
    'Dexter E2.mp4'
    'Dexter E3.mp4'

  Add the resolution of each video before its extension:
    renamer -a 'a: (%res)' --do *.mkv`
